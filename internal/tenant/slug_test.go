package tenant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"英文名称", "Power Fitness", "power_fitness"},
		{"韩文名称保留原文", "파워 휘트니스", "파워_휘트니스"},
		{"中文名称", "力量 健身房", "力量_健身房"},
		{"混合数字", "Gym 24", "gym_24"},
		{"连续分隔符折叠", "a  -  b", "a_b"},
		{"首尾分隔符去除", "  -gym-  ", "gym"},
		{"特殊字符", "F!t@Club#1", "f_t_club_1"},
		{"空字符串", "", ""},
		{"纯符号", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	name := "파워 휘트니스"
	first := Slugify(name)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Slugify(name))
	}
}
