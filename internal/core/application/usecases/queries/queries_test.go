package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery_Valid(t *testing.T) {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, query.Validate())
}

func TestNewGetOrderQuery_InvalidID(t *testing.T) {
	_, err := queries.NewGetOrderQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetOrderQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetOrderQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
}

func TestNewGetIssueThreadQuery_Valid(t *testing.T) {
	query, err := queries.NewGetIssueThreadQuery(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, query.Validate())
}

func TestGetIssueThreadQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetIssueThreadQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetIssueThreadQueryIsNotConstructed)
}

func TestNewGetNotificationsQuery_Valid(t *testing.T) {
	query, err := queries.NewGetNotificationsQuery(kernel.NewUUID(), true)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.UnreadOnly())
}

func TestGetNotificationsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetNotificationsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetNotificationsQueryIsNotConstructed)
}
