package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rechidesigns/RechiGPT/internal/server/completion"
	"github.com/Rechidesigns/RechiGPT/internal/shared/models"
)

// stubProvider counts invocations so tests can assert that certain failure
// modes never reach the network.
type stubProvider struct {
	configured bool
	calls      int
	text       string
	err        error
}

func (p *stubProvider) Configured() bool { return p.configured }

func (p *stubProvider) Complete(_ context.Context, _ string) (string, error) {
	p.calls++
	return p.text, p.err
}

// stubRepo records appended exchanges and can be made to fail.
type stubRepo struct {
	appends   []models.Exchange
	appendErr error
	listLimit int
}

func (r *stubRepo) CreateUser(context.Context, string, []byte) (models.User, error) {
	return models.User{}, errors.New("not implemented")
}

func (r *stubRepo) GetUserByEmail(context.Context, string) (models.User, []byte, error) {
	return models.User{}, nil, errors.New("not implemented")
}

func (r *stubRepo) AppendExchange(_ context.Context, ex models.Exchange) (models.Exchange, error) {
	if r.appendErr != nil {
		return models.Exchange{}, r.appendErr
	}
	ex.ID = "ex-1"
	ex.CreatedAt = time.Now().UTC()
	r.appends = append(r.appends, ex)
	return ex, nil
}

func (r *stubRepo) ListRecentExchanges(_ context.Context, _ string, limit int) ([]models.Exchange, error) {
	r.listLimit = limit
	return nil, nil
}

var testUser = models.User{ID: "u-1", Email: "u@example.com"}

func TestRelay_NotConfigured_NoNetworkNoPersist(t *testing.T) {
	provider := &stubProvider{configured: false}
	repo := &stubRepo{}
	relay := &RelayService{repo: repo, provider: provider}

	_, err := relay.Relay(context.Background(), testUser, "hi")
	assert.ErrorIs(t, err, ErrProviderNotConfigured)
	assert.Zero(t, provider.calls, "must not call the provider")
	assert.Empty(t, repo.appends, "must not persist")
}

func TestRelay_EmptyMessage(t *testing.T) {
	provider := &stubProvider{configured: true}
	relay := &RelayService{repo: &stubRepo{}, provider: provider}

	_, err := relay.Relay(context.Background(), testUser, "   ")
	assert.Error(t, err)
	assert.Zero(t, provider.calls)
}

func TestRelay_UpstreamTimeout_NotPersisted(t *testing.T) {
	provider := &stubProvider{configured: true, err: completion.ErrTimeout}
	repo := &stubRepo{}
	relay := &RelayService{repo: repo, provider: provider}

	_, err := relay.Relay(context.Background(), testUser, "hi")
	assert.ErrorIs(t, err, completion.ErrTimeout)
	assert.Equal(t, 1, provider.calls)
	assert.Empty(t, repo.appends, "timed-out call must not be persisted")
}

func TestRelay_UpstreamStatusError_NotPersisted(t *testing.T) {
	provider := &stubProvider{configured: true, err: &completion.StatusError{Code: 500, Body: "boom"}}
	repo := &stubRepo{}
	relay := &RelayService{repo: repo, provider: provider}

	_, err := relay.Relay(context.Background(), testUser, "hi")
	var statusErr *completion.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 500, statusErr.Code)
	assert.Empty(t, repo.appends)
}

func TestRelay_Success_PersistsExactlyOne(t *testing.T) {
	provider := &stubProvider{configured: true, text: "hello"}
	repo := &stubRepo{}
	relay := &RelayService{repo: repo, provider: provider}

	ex, err := relay.Relay(context.Background(), testUser, "hi")
	require.NoError(t, err)
	assert.Equal(t, "hi", ex.Message)
	assert.Equal(t, "hello", ex.Response)
	assert.False(t, ex.CreatedAt.IsZero())

	require.Len(t, repo.appends, 1)
	assert.Equal(t, testUser.ID, repo.appends[0].UserID)
	assert.Equal(t, "hi", repo.appends[0].Message)
	assert.Equal(t, "hello", repo.appends[0].Response)
}

func TestRelay_PersistenceFailure_Distinguishable(t *testing.T) {
	provider := &stubProvider{configured: true, text: "hello"}
	repo := &stubRepo{appendErr: errors.New("disk full")}
	relay := &RelayService{repo: repo, provider: provider}

	_, err := relay.Relay(context.Background(), testUser, "hi")
	assert.ErrorIs(t, err, ErrPersistence, "caller must see the exchange is not durable")
	assert.NotErrorIs(t, err, completion.ErrTimeout)
	assert.Equal(t, 1, provider.calls, "completion call did happen")
}

func TestHistory_DefaultLimit(t *testing.T) {
	repo := &stubRepo{}
	relay := &RelayService{repo: repo, provider: &stubProvider{}}

	_, err := relay.History(context.Background(), "u-1", 0)
	require.NoError(t, err)
	assert.Equal(t, 50, repo.listLimit)

	_, err = relay.History(context.Background(), "u-1", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, repo.listLimit)
}
