package bands

import (
	"testing"
	"time"

	"encore/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bandWithListens(id string, listens ...int) models.Band {
	songs := make([]models.Song, 0, len(listens))
	for i, l := range listens {
		songs = append(songs, models.Song{SongID: "sg" + string(rune('a'+i)), Title: "t", Listens: l})
	}
	return models.Band{
		BandID: id,
		Name:   "band-" + id,
		Albums: []models.Album{{AlbumID: "al-" + id, Title: "a", Songs: songs}},
	}
}

func TestAverageListens(t *testing.T) {
	assert.Equal(t, 150.0, AverageListens(bandWithListens("b1", 100, 200)))
	assert.Equal(t, 0.0, AverageListens(models.Band{BandID: "empty"}))
	assert.Equal(t, 0.0, AverageListens(models.Band{Albums: []models.Album{{AlbumID: "al1"}}}))
}

func TestAverageListensAcrossAlbums(t *testing.T) {
	band := models.Band{
		BandID: "b1",
		Albums: []models.Album{
			{AlbumID: "al1", Songs: []models.Song{{Listens: 10}, {Listens: 20}}},
			{AlbumID: "al2", Songs: []models.Song{{Listens: 60}}},
		},
	}
	assert.Equal(t, 30.0, AverageListens(band))
}

func TestRankByAverageListens(t *testing.T) {
	bands := []models.Band{
		bandWithListens("low", 10),
		bandWithListens("high", 500, 300),
		bandWithListens("mid", 100),
		{BandID: "silent"},
	}

	ranked := RankByAverageListens(bands, 3)
	require.Len(t, ranked, 3)
	assert.Equal(t, "high", ranked[0].BandID)
	assert.Equal(t, 400.0, ranked[0].AverageListeners)
	assert.Equal(t, "mid", ranked[1].BandID)
	assert.Equal(t, "low", ranked[2].BandID)
}

func TestRankByAverageListensFewerThanLimit(t *testing.T) {
	ranked := RankByAverageListens([]models.Band{bandWithListens("only", 5)}, 5)
	assert.Len(t, ranked, 1)
}

func TestEnsureAlbumIDs(t *testing.T) {
	albums := []models.Album{
		{Title: "fresh", Songs: []models.Song{{Title: "one"}, {SongID: "sg-keep", Title: "two"}}},
		{AlbumID: "al-keep", Title: "existing"},
	}

	ensureAlbumIDs(albums)

	assert.NotEmpty(t, albums[0].AlbumID)
	assert.NotEmpty(t, albums[0].Songs[0].SongID)
	assert.Equal(t, "sg-keep", albums[0].Songs[1].SongID)
	assert.Equal(t, "al-keep", albums[1].AlbumID)
	assert.NotNil(t, albums[1].Songs, "missing songs arrays are initialized")
}

func TestFindAlbum(t *testing.T) {
	band := models.Band{Albums: []models.Album{{AlbumID: "al1"}, {AlbumID: "al2"}}}

	found := findAlbum(&band, "al2")
	require.NotNil(t, found)
	assert.Equal(t, "al2", found.AlbumID)

	found.Title = "renamed"
	assert.Equal(t, "renamed", band.Albums[1].Title, "findAlbum returns a pointer into the band")

	assert.Nil(t, findAlbum(&band, "al3"))
}

func TestNormalizeBandUpdate(t *testing.T) {
	update := normalizeBandUpdate(map[string]any{
		"bandid":       "b-forged",
		"_id":          "abc",
		"albums":       []any{},
		"name":         "New Name",
		"logoUrl":      "new-logo.png",
		"bandPhotoUrl": "new-photo.jpg",
	})

	assert.Equal(t, map[string]any{
		"name":         "New Name",
		"logourl":      "new-logo.png",
		"bandphotourl": "new-photo.jpg",
	}, update)
}

func TestNormalizeBandUpdateAllManaged(t *testing.T) {
	update := normalizeBandUpdate(map[string]any{"bandid": "x", "albums": []any{}})
	assert.Empty(t, update)
}

func TestMergeAlbum(t *testing.T) {
	released := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	dst := models.Album{
		AlbumID:     "al1",
		Title:       "Old Title",
		ReleaseDate: released,
		CoverURL:    "old.jpg",
		Songs:       []models.Song{{SongID: "sg1", Title: "keep me"}},
	}

	mergeAlbum(&dst, models.Album{Title: "New Title"})
	assert.Equal(t, "New Title", dst.Title)
	assert.Equal(t, released, dst.ReleaseDate)
	assert.Equal(t, "old.jpg", dst.CoverURL)
	assert.Len(t, dst.Songs, 1, "absent songs leave the existing list alone")

	mergeAlbum(&dst, models.Album{Songs: []models.Song{{Title: "a"}, {Title: "b"}}})
	assert.Len(t, dst.Songs, 2, "present songs replace wholesale")
}
