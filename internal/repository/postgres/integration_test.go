//go:build integration

package postgres

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"testing"
	"time"

	"candidate-voting-backend/internal/domain"
	"candidate-voting-backend/pkg/apperror"
	"candidate-voting-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB starts a throwaway PostgreSQL container and opens it through the
// same pool settings the server uses, with the schema applied.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("votes"),
		tcpostgres.WithUsername("votes"),
		tcpostgres.WithPassword("votes"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := database.NewPostgresConnection(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, CreateSchema(ctx, pool))
	// Applying it twice must be harmless, the server does so on every start.
	require.NoError(t, CreateSchema(ctx, pool))
	return pool
}

func newStoredCandidate(t *testing.T, repo domain.CandidateRepository, name string) *domain.Candidate {
	t.Helper()
	age := 50
	c := &domain.Candidate{
		ID:           uuid.NewString(),
		Name:         name,
		Age:          &age,
		Party:        "Independent",
		Constituency: "North",
		Education:    "MA",
		Biography:    "Local organiser.",
	}
	c.ApplyDefaults()
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func requireCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, apperror.As(err).Code)
}

func TestCandidateRepositoryAgainstPostgres(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewCandidateRepository(pool)
	ctx := context.Background()

	t.Run("create returns empty sets and defaults", func(t *testing.T) {
		c := newStoredCandidate(t, repo, "Ada")
		assert.Equal(t, []string{}, c.LikedBy)
		assert.Equal(t, []string{}, c.DislikedBy)
		assert.Equal(t, []string{}, c.ViewedBy)
		assert.False(t, c.CreatedAt.IsZero())

		got, err := repo.GetByID(ctx, c.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, domain.DefaultAllegations, got.Allegations)
		assert.Equal(t, domain.DefaultCriminalRecord, got.CriminalRecord)
		assert.Nil(t, got.Achievements)
	})

	t.Run("repeating a like clears it", func(t *testing.T) {
		c := newStoredCandidate(t, repo, "Ben")

		res, err := repo.ToggleInteraction(ctx, c.ID, "1.1.1.1", domain.ActionLike)
		require.NoError(t, err)
		assert.Equal(t, domain.InteractionResult{LikesCount: 1, UserHasLiked: true}, *res)

		res, err = repo.ToggleInteraction(ctx, c.ID, "1.1.1.1", domain.ActionLike)
		require.NoError(t, err)
		assert.Equal(t, domain.InteractionResult{}, *res)
	})

	t.Run("dislike replaces a like", func(t *testing.T) {
		c := newStoredCandidate(t, repo, "Cleo")

		_, err := repo.ToggleInteraction(ctx, c.ID, "2.2.2.2", domain.ActionLike)
		require.NoError(t, err)
		res, err := repo.ToggleInteraction(ctx, c.ID, "2.2.2.2", domain.ActionDislike)
		require.NoError(t, err)
		assert.Equal(t, domain.InteractionResult{DislikesCount: 1, UserHasDisliked: true}, *res)

		got, err := repo.GetByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Empty(t, got.LikedBy)
		assert.Equal(t, []string{"2.2.2.2"}, got.DislikedBy)
	})

	t.Run("a visitor is never in both sets", func(t *testing.T) {
		c := newStoredCandidate(t, repo, "Dev")
		visitors := []string{"a", "b", "c"}
		actions := []domain.Action{domain.ActionLike, domain.ActionDislike, domain.ActionDislike, domain.ActionLike, domain.ActionLike}

		states := map[string]domain.VoteState{}
		for i := 0; i < 30; i++ {
			v := visitors[i%len(visitors)]
			a := actions[i%len(actions)]
			res, err := repo.ToggleInteraction(ctx, c.ID, v, a)
			require.NoError(t, err)

			states[v] = domain.Transition(states[v], a)
			assert.Equal(t, states[v] == domain.StateLiked, res.UserHasLiked, "step %d", i)
			assert.Equal(t, states[v] == domain.StateDisliked, res.UserHasDisliked, "step %d", i)

			got, err := repo.GetByID(ctx, c.ID)
			require.NoError(t, err)
			for _, liked := range got.LikedBy {
				assert.False(t, slices.Contains(got.DislikedBy, liked), "step %d: %s in both sets", i, liked)
			}
			assert.Equal(t, len(got.LikedBy), res.LikesCount)
			assert.Equal(t, len(got.DislikedBy), res.DislikesCount)
		}
	})

	t.Run("concurrent likes from distinct visitors all land", func(t *testing.T) {
		c := newStoredCandidate(t, repo, "Eve")

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := repo.ToggleInteraction(ctx, c.ID, fmt.Sprintf("10.0.0.%d", i), domain.ActionLike)
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		got, err := repo.GetByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Len(t, got.LikedBy, 20)
	})

	t.Run("views are counted once per visitor", func(t *testing.T) {
		c := newStoredCandidate(t, repo, "Finn")

		for i := 0; i < 3; i++ {
			require.NoError(t, repo.RecordView(ctx, c.ID, "3.3.3.3"))
		}
		require.NoError(t, repo.RecordView(ctx, c.ID, "4.4.4.4"))
		require.NoError(t, repo.RecordView(ctx, uuid.NewString(), "3.3.3.3"))

		got, err := repo.GetByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"3.3.3.3", "4.4.4.4"}, got.ViewedBy)
	})

	t.Run("update keeps the visitor sets", func(t *testing.T) {
		c := newStoredCandidate(t, repo, "Gus")
		_, err := repo.ToggleInteraction(ctx, c.ID, "5.5.5.5", domain.ActionLike)
		require.NoError(t, err)

		c.Party = "Green"
		c.LikedBy = nil
		require.NoError(t, repo.Update(ctx, c))

		got, err := repo.GetByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "Green", got.Party)
		assert.Equal(t, []string{"5.5.5.5"}, got.LikedBy)
		assert.True(t, got.UpdatedAt.After(got.CreatedAt) || got.UpdatedAt.Equal(got.CreatedAt))
	})

	t.Run("unknown ids are not found", func(t *testing.T) {
		missing := uuid.NewString()

		got, err := repo.GetByID(ctx, missing)
		require.NoError(t, err)
		assert.Nil(t, got)

		_, err = repo.ToggleInteraction(ctx, missing, "x", domain.ActionLike)
		requireCode(t, err, http.StatusNotFound)
		requireCode(t, repo.Delete(ctx, missing), http.StatusNotFound)

		age := 30
		requireCode(t, repo.Update(ctx, &domain.Candidate{ID: missing, Name: "n", Age: &age}), http.StatusNotFound)
	})

	t.Run("list orders by likes then newest first", func(t *testing.T) {
		_, err := pool.Exec(ctx, `DELETE FROM candidates`)
		require.NoError(t, err)

		older := newStoredCandidate(t, repo, "Older")
		newer := newStoredCandidate(t, repo, "Newer")
		popular := newStoredCandidate(t, repo, "Popular")
		for _, v := range []string{"p1", "p2"} {
			_, err := repo.ToggleInteraction(ctx, popular.ID, v, domain.ActionLike)
			require.NoError(t, err)
		}

		list, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, []string{popular.ID, newer.ID, older.ID}, []string{list[0].ID, list[1].ID, list[2].ID})
		assert.Len(t, list[0].LikedBy, 2)

		require.NoError(t, repo.Delete(ctx, older.ID))
		list, err = repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})
}

func TestAccountRepositoryAgainstPostgres(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewAccountRepository(pool)
	ctx := context.Background()

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	first := &domain.Account{ID: uuid.NewString(), Name: "Alice", Email: "a@x.com", PasswordHash: "hash", IsAdmin: true}
	require.NoError(t, repo.Create(ctx, first))
	assert.False(t, first.CreatedAt.IsZero())

	second := &domain.Account{ID: uuid.NewString(), Name: "Bob", Email: "b@x.com", PasswordHash: "hash", IsAdmin: true}
	err = repo.Create(ctx, second)
	requireCode(t, err, http.StatusForbidden)
	assert.Equal(t, domain.MsgRegistrationLocked, apperror.As(err).Message)

	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)

	got, err = repo.GetByEmail(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}
