package pagination

import (
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name           string
		limit, offset  int
		wantL, wantOff int
	}{
		{"defaults", 0, 0, 10, 0},
		{"negative limit", -3, 0, 10, 0},
		{"limit above max", 50, 0, 10, 0},
		{"limit in range", 5, 0, 5, 0},
		{"negative offset", 10, -7, 10, 0},
		{"offset kept", 10, 30, 10, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Sanitize(tt.limit, tt.offset)
			assert.Equal(t, tt.wantL, p.Limit)
			assert.Equal(t, tt.wantOff, p.Offset)
		})
	}
}

func TestClampOffset(t *testing.T) {
	p := Sanitize(10, 25).ClampOffset(12)
	assert.Equal(t, 12, p.Offset)

	p = Sanitize(10, 5).ClampOffset(12)
	assert.Equal(t, 5, p.Offset)

	// Offset never exceeds totalCount, even at zero.
	p = Sanitize(10, 5).ClampOffset(0)
	assert.Equal(t, 0, p.Offset)
}

func TestBuildEnvelope_MiddlePage(t *testing.T) {
	p := Params{Limit: 10, Offset: 10}
	env := BuildEnvelope(p, 35, 10, "/api/timeline", url.Values{})

	assert.Equal(t, 35, env.TotalCount)
	assert.Equal(t, 10, env.ItemsCount)
	require.NotNil(t, env.NextPage)
	require.NotNil(t, env.PrevPage)
	assert.Equal(t, "/api/timeline?limit=10&offset=20", *env.NextPage)
	assert.Equal(t, "/api/timeline?limit=10&offset=0", *env.PrevPage)
}

func TestBuildEnvelope_FirstPage(t *testing.T) {
	p := Params{Limit: 10, Offset: 0}
	env := BuildEnvelope(p, 15, 10, "/api/timeline", url.Values{})

	require.NotNil(t, env.NextPage)
	assert.Nil(t, env.PrevPage)
	assert.Equal(t, "/api/timeline?limit=10&offset=10", *env.NextPage)
}

func TestBuildEnvelope_LastPage(t *testing.T) {
	p := Params{Limit: 10, Offset: 10}
	env := BuildEnvelope(p, 15, 5, "/api/timeline", url.Values{})

	assert.Nil(t, env.NextPage)
	require.NotNil(t, env.PrevPage)
}

func TestBuildEnvelope_ExactBoundaryHasNoNext(t *testing.T) {
	// offset+limit == totalCount: no next page.
	p := Params{Limit: 10, Offset: 10}
	env := BuildEnvelope(p, 20, 10, "/api/timeline", url.Values{})
	assert.Nil(t, env.NextPage)
}

func TestBuildEnvelope_PrevClampsToZero(t *testing.T) {
	p := Params{Limit: 10, Offset: 4}
	env := BuildEnvelope(p, 40, 10, "/api/timeline", url.Values{})

	require.NotNil(t, env.PrevPage)
	assert.Equal(t, "/api/timeline?limit=10&offset=0", *env.PrevPage)
}

func TestBuildEnvelope_PreservesQueryParams(t *testing.T) {
	q := url.Values{}
	q.Set("username", "bob")
	p := Params{Limit: 10, Offset: 0}

	env := BuildEnvelope(p, 30, 10, "/api/trends/golang", q)
	require.NotNil(t, env.NextPage)
	parsed, err := url.Parse(*env.NextPage)
	require.NoError(t, err)
	assert.Equal(t, "bob", parsed.Query().Get("username"))
	assert.Equal(t, "10", parsed.Query().Get("offset"))
}

func TestCursorConsistency(t *testing.T) {
	// Walking nextPage from offset o lands exactly at o+l until the end.
	total := 33
	p := Sanitize(10, 0)
	visited := []int{}
	for {
		visited = append(visited, p.Offset)
		env := BuildEnvelope(p, total, min(p.Limit, total-p.Offset), "/api/timeline", url.Values{})
		if env.NextPage == nil {
			break
		}
		parsed, err := url.Parse(*env.NextPage)
		require.NoError(t, err)
		next, err := url.ParseQuery(parsed.RawQuery)
		require.NoError(t, err)
		assert.Equal(t, "10", next.Get("limit"))
		p.Offset += p.Limit
		assert.Equal(t, strconv.Itoa(p.Offset), next.Get("offset"))
	}
	assert.Equal(t, []int{0, 10, 20, 30}, visited)
}
