package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeInstance(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"1", Instance1},
		{"2", Instance2},
		{"3", Instance3},
		{"", ""},
		{"4", "4"},
		{Instance2, Instance2},
	}
	for _, tt := range tests {
		got := NormalizeInstance(tt.in)
		assert.Equal(t, tt.want, got, "NormalizeInstance(%q)", tt.in)
		assert.Equal(t, got, NormalizeInstance(got), "not idempotent for %q", tt.in)
	}
}

func TestSplitLines(t *testing.T) {
	text := "  Labyrinthos ( 16.5 , 16.8 ) Storsie \r\n\r\n\n  \tRaiden [S]: Gamma - Yanxia ( 23.6, 11.4 )\r"

	lines := SplitLines(text)

	require.Len(t, lines, 2)
	assert.Equal(t, "Labyrinthos ( 16.5 , 16.8 ) Storsie", lines[0])
	assert.Equal(t, "Raiden [S]: Gamma - Yanxia ( 23.6, 11.4 )", lines[1])
}

func TestSplitLines_NFC(t *testing.T) {
	lines := SplitLines("O\u0308stliches Thanalan ( 1 , 2 ) X")

	require.Len(t, lines, 1)
	assert.Equal(t, "\u00d6stliches Thanalan ( 1 , 2 ) X", lines[0])
}

func TestSplitLines_Empty(t *testing.T) {
	assert.Empty(t, SplitLines(""))
	assert.Empty(t, SplitLines("\r\n  \n"))
}

func TestClassify_Siren(t *testing.T) {
	line := "(Maybe: Storsie) \ue0bbLabyrinthos\ue0b2 ( 17 , 9.6 )"

	res, err := Classify(line)
	require.NoError(t, err)

	require.Equal(t, KindSighting, res.Kind)
	assert.Equal(t, "siren", res.Grammar)
	s := res.Sighting
	assert.Equal(t, "Labyrinthos", s.MapName)
	assert.Equal(t, "Storsie", s.MarkName)
	assert.Equal(t, Instance2, s.Instance)
	assert.Equal(t, 17.0, s.X)
	assert.Equal(t, 9.6, s.Y)
	assert.Equal(t, line, s.Line)
}

func TestClassify_SirenNoInstance(t *testing.T) {
	res, err := Classify("(Maybe: Sphatika) \ue0bbUltima Thule ( 30.1  , 22.4 )")
	require.NoError(t, err)

	require.Equal(t, KindSighting, res.Kind)
	assert.Equal(t, "Ultima Thule", res.Sighting.MapName)
	assert.Equal(t, "Ultima Thule", res.Sighting.RawMap)
	assert.Equal(t, "Sphatika", res.Sighting.MarkName)
	assert.Empty(t, res.Sighting.Instance)
	assert.Equal(t, 30.1, res.Sighting.X)
	assert.Equal(t, 22.4, res.Sighting.Y)
}

func TestClassify_Bear(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		mapName  string
		mark     string
		instance string
		x, y     float64
	}{
		{"plain", "Labyrinthos ( 16.5 , 16.8 ) Storsie", "Labyrinthos", "Storsie", "", 16.5, 16.8},
		{"instance digit", "Labyrinthos 3 ( 16.5 , 16.8 ) Storsie", "Labyrinthos", "Storsie", Instance3, 16.5, 16.8},
		{"multi word map", "Mare Lamentorum ( 21.9 , 36.3 ) Ker Shroud", "Mare Lamentorum", "Ker Shroud", "", 21.9, 36.3},
		{"apostrophe and hyphen", "Il Mheg ( 12.0 , 30.2 ) O'Kubi-Lal", "Il Mheg", "O'Kubi-Lal", "", 12.0, 30.2},
		{"tight coords", "Garlemald 1 (13.3,30.1) Minerva", "Garlemald", "Minerva", Instance1, 13.3, 30.1},
		{"japanese", "ラヴィリンソス ( 16.5 , 16.8 ) ストーシー", "ラヴィリンソス", "ストーシー", "", 16.5, 16.8},
		{"ideographic space", "ラヴィリンソス\u3000( 16.5 , 16.8 ) ストーシー", "ラヴィリンソス", "ストーシー", "", 16.5, 16.8},
		{"no-break space", "Labyrinthos\u00a0( 16.5 , 16.8 ) Storsie", "Labyrinthos", "Storsie", "", 16.5, 16.8},
		{"no-break space in map name", "Mare\u00a0Lamentorum 2\u00a0(\u00a021.9 , 36.3 ) Ker", "Mare\u00a0Lamentorum", "Ker", Instance2, 21.9, 36.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Classify(tt.line)
			require.NoError(t, err)

			require.Equal(t, KindSighting, res.Kind)
			assert.Equal(t, "bear", res.Grammar)
			assert.Equal(t, tt.mapName, res.Sighting.MapName)
			assert.Equal(t, tt.mark, res.Sighting.MarkName)
			assert.Equal(t, tt.instance, res.Sighting.Instance)
			assert.Equal(t, tt.x, res.Sighting.X)
			assert.Equal(t, tt.y, res.Sighting.Y)
		})
	}
}

func TestClassify_SirenUnicodeSpaces(t *testing.T) {
	res, err := Classify("(Maybe:\u3000Storsie)\u00a0\ue0bbLabyrinthos\ue0b2\u3000(\u300017 ,\u00a09.6 )")
	require.NoError(t, err)

	require.Equal(t, KindSighting, res.Kind)
	assert.Equal(t, "siren", res.Grammar)
	assert.Equal(t, "Labyrinthos", res.Sighting.MapName)
	assert.Equal(t, "Storsie", res.Sighting.MarkName)
	assert.Equal(t, Instance2, res.Sighting.Instance)
}

func TestClassify_BearNotAvailable(t *testing.T) {
	res, err := Classify("Labyrinthos ( NOT AVAILABLE ) Storsie")
	require.NoError(t, err)

	assert.Equal(t, KindSkip, res.Kind)
	assert.Equal(t, "bear", res.Grammar)
	assert.Empty(t, res.Sighting.MapName)
}

func TestClassify_Faloop(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		mapName  string
		mark     string
		world    string
		instance string
		x, y     float64
	}{
		{"plain", "Raiden [S]: Gamma - Yanxia ( 23.6, 11.4 )", "Yanxia", "Gamma", "Raiden", "", 23.6, 11.4},
		{"parenthesized instance", "Ultros [S]: Burfurlur the Canny - Labyrinthos (2) ( 7.1 , 8.2 )", "Labyrinthos", "Burfurlur the Canny", "Ultros", Instance2, 7.1, 8.2},
		{"hyphenated mark", "Zodiark [S]: Ker-Shroud - Amh Araeng ( 10.0, 20.0 )", "Amh Araeng", "Ker-Shroud", "Zodiark", "", 10, 20},
		{"bare digit stays in map name", "Raiden [S]: Gamma - Zone 2 ( 1.0, 2.0 )", "Zone 2", "Gamma", "Raiden", "", 1, 2},
		{"no-break space", "Raiden [S]: Gamma\u00a0- Yanxia ( 23.6, 11.4 )", "Yanxia", "Gamma", "Raiden", "", 23.6, 11.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Classify(tt.line)
			require.NoError(t, err)

			require.Equal(t, KindSighting, res.Kind)
			assert.Equal(t, "faloop", res.Grammar)
			assert.Equal(t, tt.mapName, res.Sighting.MapName)
			assert.Equal(t, tt.mark, res.Sighting.MarkName)
			assert.Equal(t, tt.world, res.Fields[FieldWorld])
			assert.Equal(t, tt.instance, res.Sighting.Instance)
			assert.Equal(t, tt.x, res.Sighting.X)
			assert.Equal(t, tt.y, res.Sighting.Y)
		})
	}
}

func TestClassify_Unrecognized(t *testing.T) {
	for _, line := range []string{
		"hello world",
		"Labyrinthos 16.5 16.8 Storsie",
		"Labyrinthos ( 16.5 ) Storsie",
		"[S]: Gamma - Yanxia ( 23.6, 11.4 )",
	} {
		res, err := Classify(line)
		require.NoError(t, err, line)
		assert.Equal(t, KindUnrecognized, res.Kind, line)
		assert.Empty(t, res.Grammar, line)
	}
}

func TestClassify_CoordinateDefect(t *testing.T) {
	_, err := Classify("Labyrinthos ( 1.2.3 , 4 ) Storsie")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCoordinate)
}

func TestClassify_Order(t *testing.T) {
	line := "Raiden [S]: Gamma - Yanxia ( 23.6, 11.4 )"

	tr := ClassifyWithTrace(line)

	require.Len(t, tr.Attempts, len(Grammars))
	assert.Equal(t, "siren", tr.Attempts[0].Grammar)
	assert.Equal(t, "faloop", tr.Attempts[1].Grammar)
	assert.Equal(t, "bear", tr.Attempts[2].Grammar)
	assert.False(t, tr.Attempts[0].Matched)
	assert.True(t, tr.Attempts[1].Matched)
	assert.Equal(t, "faloop", tr.Result.Grammar)
	assert.NoError(t, tr.Err)
}

func TestClassifyWithTrace_Unrecognized(t *testing.T) {
	tr := ClassifyWithTrace("nothing to see")

	assert.Equal(t, KindUnrecognized, tr.Result.Kind)
	for _, a := range tr.Attempts {
		assert.False(t, a.Matched, a.Grammar)
		assert.NotEmpty(t, a.Pattern)
	}
}

func TestFieldsString(t *testing.T) {
	f := Fields{FieldMapName: "Yanxia", FieldX: "1", FieldY: "2", "other": "x"}

	assert.Equal(t, "(map_name:Yanxia),(x_coord:1),(y_coord:2)", f.String())
}
