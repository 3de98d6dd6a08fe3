package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedFilm struct {
	ID     string
	Title  string
	Rating *float64
	Genres []string
}

func TestCodecsRoundTripPointerFields(t *testing.T) {
	rating := 8.5
	in := []cachedFilm{{ID: "f1", Title: "The Star", Rating: &rating, Genres: []string{"Action"}}, {ID: "f2"}}

	for _, codec := range []Codec{JSON, Msgpack} {
		t.Run(codec.Name(), func(t *testing.T) {
			data, err := codec.Marshal(in)
			require.NoError(t, err)

			var out []cachedFilm
			require.NoError(t, codec.Unmarshal(data, &out))
			assert.Equal(t, in, out)
		})
	}
}

func TestNewCodec(t *testing.T) {
	c, err := NewCodec("")
	require.NoError(t, err)
	assert.Equal(t, "json", c.Name())

	c, err = NewCodec("msgpack")
	require.NoError(t, err)
	assert.Equal(t, "msgpack", c.Name())

	_, err = NewCodec("gob")
	assert.Error(t, err)
}
