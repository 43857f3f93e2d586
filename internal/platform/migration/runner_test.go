// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPgx5DSN(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/medora", ToPgx5DSN("postgres://u:p@db:5432/medora"))
	assert.Equal(t, "pgx5://u:p@db/medora", ToPgx5DSN("postgresql://u:p@db/medora"))
	assert.Equal(t, "pgx5://already", ToPgx5DSN("pgx5://already"))
	assert.Equal(t, "host=db user=u", ToPgx5DSN("host=db user=u"))
}
