package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studentregistry/internal/pkg/apperrors"
)

// recordingTx implements the Querier subset of pgx.Tx and records every
// statement it is handed.
type recordingTx struct {
	pgx.Tx
	execSQL []string
	tag     pgconn.CommandTag
	err     error
}

func (f *recordingTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execSQL = append(f.execSQL, sql)
	return f.tag, f.err
}

func TestTokenRepository_WithTxExecutesOnTransaction(t *testing.T) {
	tx := &recordingTx{tag: pgconn.NewCommandTag("INSERT 0 1")}
	repo := NewTokenRepository(nil).WithTx(tx)

	err := repo.CreateToken(context.Background(), "refresh-value", 7, time.Now().Add(time.Hour))
	require.NoError(t, err)

	require.Len(t, tx.execSQL, 1)
	assert.Contains(t, tx.execSQL[0], "INSERT INTO refresh_tokens")
}

func TestTokenRepository_RevokeInTx(t *testing.T) {
	tx := &recordingTx{tag: pgconn.NewCommandTag("UPDATE 1")}
	repo := NewTokenRepository(nil).WithTx(tx)

	require.NoError(t, repo.RevokeToken(context.Background(), "refresh-value"))
	require.Len(t, tx.execSQL, 1)
	assert.Contains(t, tx.execSQL[0], "UPDATE refresh_tokens")
}

func TestTokenRepository_RevokeMissingTokenInTx(t *testing.T) {
	tx := &recordingTx{tag: pgconn.NewCommandTag("UPDATE 0")}
	repo := NewTokenRepository(nil).WithTx(tx)

	err := repo.RevokeToken(context.Background(), "unknown-value")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}
