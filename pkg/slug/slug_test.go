// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Chest X-Ray Scan", "chest-x-ray-scan"},
		{"Ảnh hồ sơ nhân viên", "anh-ho-so-nhan-vien"},
		{"../../etc/passwd", "etc-passwd"},
		{"  __profile__  ", "profile"},
		{"???", Fallback},
		{"", Fallback},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, From(tt.in))
		})
	}
}
