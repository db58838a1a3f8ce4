package sqlite_test

import (
	"testing"

	"github.com/Dmitry-Bulhin/ya-note/internal/repository/repotest"
	"github.com/Dmitry-Bulhin/ya-note/internal/repository/sqlite/sqlitetest"
)

func TestRepository(t *testing.T) {
	repotest.Run(t, func(t *testing.T) repotest.Repository {
		_, repo := sqlitetest.New(t)
		return repo
	})
}
