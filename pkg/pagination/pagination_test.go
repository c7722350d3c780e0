package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsFromQuery(query string) *PageParams {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return ParsePageParams(c)
}

func TestParsePageParams(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		expectedPage  int
		expectedLimit int
	}{
		{"默认值", "", 1, 10},
		{"正常参数", "page=3&limit=20", 3, 20},
		{"非法page回退默认", "page=abc&limit=20", 1, 20},
		{"负数page回退默认", "page=-1", 1, 10},
		{"limit超上限截断", "limit=500", 1, 100},
		{"零limit回退默认", "limit=0", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := paramsFromQuery(tt.query)
			assert.Equal(t, tt.expectedPage, params.Page)
			assert.Equal(t, tt.expectedLimit, params.Limit)
		})
	}
}

func TestNewPageInfo(t *testing.T) {
	info := NewPageInfo(2, 10, 25)
	assert.Equal(t, int64(25), info.Total)
	assert.Equal(t, 2, info.Page)
	assert.Equal(t, 3, info.TotalPages)

	empty := NewPageInfo(1, 10, 0)
	assert.Equal(t, 0, empty.TotalPages)
}

func TestGetOffset(t *testing.T) {
	p := &PageParams{Page: 3, Limit: 20}
	assert.Equal(t, 40, p.GetOffset())
}
