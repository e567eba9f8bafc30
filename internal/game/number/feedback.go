package number

import "math/rand"

// Tier is how far a guess landed from the secret.
type Tier int

const (
	TierVeryClose Tier = iota
	TierCloser
	TierClose
	TierFar
	TierExtreme
)

func (t Tier) String() string {
	switch t {
	case TierExtreme:
		return "extreme"
	case TierFar:
		return "far"
	case TierClose:
		return "close"
	case TierCloser:
		return "closer"
	default:
		return "very-close"
	}
}

// Direction says which way the guess missed.
type Direction int

const (
	TooLow Direction = iota
	TooHigh
)

func (d Direction) String() string {
	if d == TooHigh {
		return "too high"
	}
	return "too low"
}

// DirectionOf compares a wrong guess with the secret.
func DirectionOf(guess, secret int64) Direction {
	if guess > secret {
		return TooHigh
	}
	return TooLow
}

// Classify picks the feedback tier. A guess under 1% of the secret or over
// ten times it is extreme regardless of the absolute distance.
func Classify(guess, secret int64) Tier {
	diff := absDiff(guess, secret)

	g, s := float64(guess), float64(secret)
	switch {
	case diff >= 100_000_000, g < s*0.01, g > s*10:
		return TierExtreme
	case diff >= 10_000_000:
		return TierFar
	case diff >= 1_000_000:
		return TierClose
	case diff >= 100:
		return TierCloser
	default:
		return TierVeryClose
	}
}

// absDiff returns |a-b| without overflowing for extreme inputs.
func absDiff(a, b int64) uint64 {
	if a > b {
		return uint64(a) - uint64(b)
	}
	return uint64(b) - uint64(a)
}

var messages = map[Tier]map[Direction][]string{
	TierExtreme: {
		TooHigh: {
			"**Terlalu Tinggi!** *Eh, awak jawab ikut nombor IC ke ni?*",
			"**CIKGU TERKEJUT! Tinggi sangat!** *Turunlah sikit, cikgu pening dah*",
			"*Ni bukan soalan KBAT tahap universiti.* ***Turun lagi, anak murid!***",
			"**Jawapan awak ni tinggi sampai cikgu rasa rendah diri.** *Turunlah, cikgu merayu dengan penuh adab*",
			"**Tinggi sangat ni.** *Cikgu kena angkat tangan minta tolong.*",
			"***Ini bukan menara KLCC, tak perlu setinggi itu.***",
		},
		TooLow: {
			"**Rendah sangat!** *Fikir yang lebih tinggi lagi. Terlalu jauh tu!*",
			"**CIKGU SEDIH! Awak meneka dari Darjah 1 ke ni?** *Rendah sangat! Naikkan lagi.*",
			"*Cikgu ajar tadi guna kalkulator kan?* ***Naik lagi, anak murid!***",
			"***Naiklah lagi, cikgu janji tak ketawa.***",
			"***Rendah betul ni, kalkulator awak habis bateri ke?***",
		},
	},
	TierFar: {
		TooHigh: {
			"**Dah panas sikit, tapi awak masih terlebih jawab.** *Cuba turunkan lagi, slow-slow*",
			"**Okay, Cikgu nampak usaha!** *Turun sikit lagi~*",
			"*Jangan gelojoh, ini bukan ujian larian 100m.* ***Turun sikit lagi!***",
			"**Cuba turunkan sikit, sikit je, jangan ego sangat.**",
			"**Cikgu ajar tambah dan tolak, bukan roket sains.** *Turunkan roket tu sekarang~*",
		},
		TooLow: {
			"**Masih rendah.** *Dah dekat, tapi masih bawah~*",
			"**Okay, Cikgu nampak usaha!** *Cuba naikkan sikit lagi, jangan give up!*",
			"**Cikgu bagi hint:** *Jawapan lebih tinggi dari ni*",
		},
	},
	TierClose: {
		TooHigh: {
			"**Eh Ehhh!** *Dah hampir dekat, turun sikit je~*",
			"**Panas dah ni!** *Jawapan awak tinggi sikit je, turunkan sedikit*",
		},
		TooLow: {
			"**Sejukk! Sikit lagi~** *Jawapan awak rendah sikit je, naik sikit je~*",
			"**Sejuk sikit lagi!** *Jawapan awak rendah sikit je, naikkan sedikit*",
		},
	},
	TierCloser: {
		TooHigh: {
			"**Cikgu dah nampak jawapan tu!** *Turun sikit sangat je lagi*",
			"**Hampir kena!** *Tinggi sikit, cuba rendahkan perlahan-lahan*",
		},
		TooLow: {
			"**Cikgu dah nampak jawapan tu!** *Naik sikit sangat je lagi*",
			"**Hampir kena!** *Rendah sikit, cuba tinggikan perlahan-lahan*",
		},
	},
	TierVeryClose: {
		TooHigh: {
			"**Cikgu dah berdiri belakang.** *Dah dekat sangat ni! Turun sikit je..*",
			"**Cikgu dah berdiri belakang.** *Cuba adjust bawah sikit lagi, jangan gemuruh*",
		},
		TooLow: {
			"**Cikgu dah berdiri belakang.** *Dah dekat sangat ni! Naik sikit je..*",
			"**Cikgu dah berdiri belakang.** *Cuba adjust atas sikit lagi, jangan gemuruh*",
		},
	},
}

func pickMessage(rng *rand.Rand, t Tier, d Direction) string {
	pool := messages[t][d]
	if len(pool) == 0 {
		return ""
	}
	return pool[rng.Intn(len(pool))]
}
