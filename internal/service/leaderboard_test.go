package service

import (
	"context"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/MuizKmz/discord-bot-app/internal/metrics"
	"github.com/MuizKmz/discord-bot-app/internal/model"
	"github.com/MuizKmz/discord-bot-app/internal/repository"
	"github.com/MuizKmz/discord-bot-app/internal/repository/mocks"
)

type LeaderboardServiceTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockStore *mocks.MockLeaderboardStore
	metrics   *metrics.Metrics
	service   *LeaderboardService
	ctx       context.Context

	userID   string
	userName string
}

func (s *LeaderboardServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockStore = mocks.NewMockLeaderboardStore(s.mockCtrl)
	s.mockStore.EXPECT().Name().Return("mock").AnyTimes()
	s.metrics = metrics.New()
	s.service = NewLeaderboardService(s.mockStore, s.metrics, 0)
	s.ctx = context.Background()

	s.userID = gofakeit.Numerify("############")
	s.userName = gofakeit.Username()
}

func (s *LeaderboardServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestLeaderboardServiceSuite(t *testing.T) {
	suite.Run(t, new(LeaderboardServiceTestSuite))
}

func (s *LeaderboardServiceTestSuite) TestAward_Persists() {
	award := model.Award{UserID: s.userID, DisplayName: s.userName, Points: 1, Item: "seri", Category: model.CategoryWord}
	stored := model.NewEntry(s.userID, s.userName)
	stored.Apply(award)

	s.mockStore.EXPECT().Increment(s.ctx, award).Return(stored, nil)

	entry := s.service.Award(s.ctx, award)
	s.Equal(stored, entry)
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.Awards.WithLabelValues(model.CategoryWord)))
}

func (s *LeaderboardServiceTestSuite) TestAward_FailSafe() {
	award := model.Award{UserID: s.userID, DisplayName: s.userName, Points: 1, Item: "teka-no-7", Category: model.CategoryNumber}
	s.mockStore.EXPECT().Increment(s.ctx, award).Return(nil, errors.New("disk full"))

	var entry *model.Entry
	s.NotPanics(func() { entry = s.service.Award(s.ctx, award) })
	s.Require().NotNil(entry)
	s.Equal(int64(1), entry.TotalPoints)
	s.Equal(int64(1), entry.PointsPerCategory[model.CategoryNumber])
	s.Equal([]string{"teka-no-7"}, entry.GuessedWords)
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.StoreErrors.WithLabelValues("mock", "increment")))
}

func (s *LeaderboardServiceTestSuite) TestAward_DefaultsCategory() {
	s.mockStore.EXPECT().
		Increment(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, a model.Award) (*model.Entry, error) {
			s.Equal(model.CategoryWord, a.Category)
			e := model.NewEntry(a.UserID, a.DisplayName)
			e.Apply(a)
			return e, nil
		})

	s.service.Award(s.ctx, model.Award{UserID: s.userID, DisplayName: s.userName, Points: 1})
}

func (s *LeaderboardServiceTestSuite) TestTopPlayers_UsesConfiguredLimit() {
	top := []*model.Entry{model.NewEntry("a", "A")}
	s.mockStore.EXPECT().TopN(s.ctx, DefaultTopLimit).Return(top, nil)

	got, err := s.service.TopPlayers(s.ctx, 0)
	s.Require().NoError(err)
	s.Equal(top, got)
}

func (s *LeaderboardServiceTestSuite) TestTopPlayers_Error() {
	s.mockStore.EXPECT().TopN(s.ctx, 5).Return(nil, errors.New("conn refused"))

	_, err := s.service.TopPlayers(s.ctx, 5)
	s.Error(err)
}

func (s *LeaderboardServiceTestSuite) TestPlayerScore() {
	stored := model.NewEntry(s.userID, s.userName)
	gomock.InOrder(
		s.mockStore.EXPECT().GetByID(s.ctx, s.userID).Return(stored, nil),
		s.mockStore.EXPECT().GetByID(s.ctx, "stranger").Return(nil, repository.ErrEntryNotFound),
		s.mockStore.EXPECT().GetByID(s.ctx, s.userID).Return(nil, errors.New("conn refused")),
	)

	got, err := s.service.PlayerScore(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(stored, got)

	_, err = s.service.PlayerScore(s.ctx, "stranger")
	s.ErrorIs(err, repository.ErrEntryNotFound)
	s.Zero(testutil.ToFloat64(s.metrics.StoreErrors.WithLabelValues("mock", "get")))

	_, err = s.service.PlayerScore(s.ctx, s.userID)
	s.Error(err)
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.StoreErrors.WithLabelValues("mock", "get")))
}

func (s *LeaderboardServiceTestSuite) TestResetAndFlush() {
	gomock.InOrder(
		s.mockStore.EXPECT().ResetAll(s.ctx).Return(nil),
		s.mockStore.EXPECT().Flush(s.ctx).Return(errors.New("read-only fs")),
	)

	s.NoError(s.service.ResetAll(s.ctx))
	s.Error(s.service.Flush(s.ctx))
}

func (s *LeaderboardServiceTestSuite) TestLoad() {
	s.mockStore.EXPECT().Load(s.ctx).Return(map[string]*model.Entry{
		"a": model.NewEntry("a", "A"),
	}, errors.Join(errors.New("bad json"), repository.ErrNoBackup))

	n, err := s.service.Load(s.ctx)
	s.Equal(1, n)
	s.ErrorIs(err, repository.ErrNoBackup)
}

// TestAward_BothCategories runs the two-game example against a real file
// store: one solved word and one number win give a total of two.
func TestAward_BothCategories(t *testing.T) {
	ctx := context.Background()
	store := repository.NewFileStore(repository.FileStoreConfig{
		Path:      t.TempDir() + "/leaderboard.json",
		BackupDir: t.TempDir(),
	})
	svc := NewLeaderboardService(store, nil, 10)

	svc.Award(ctx, model.Award{UserID: "u1", DisplayName: "Ali", Points: 1, Item: "seri", Category: model.CategoryWord})
	entry := svc.Award(ctx, model.Award{UserID: "u1", DisplayName: "Ali", Points: 1, Item: "teka-no-42", Category: model.CategoryNumber})

	assert.Equal(t, int64(2), entry.TotalPoints)
	assert.Equal(t, int64(1), entry.PointsPerCategory[model.CategoryWord])
	assert.Equal(t, int64(1), entry.PointsPerCategory[model.CategoryNumber])
	assert.Equal(t, []string{"seri", "teka-no-42"}, entry.GuessedWords)

	top, err := svc.TopPlayers(ctx, 0)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Ali", top[0].DisplayName)
}
