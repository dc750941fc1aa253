package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("all listed statuses are valid", func(t *testing.T) {
		for _, s := range order.AllStatuses() {
			require.NoError(t, s.Validate(), s.String())
		}
	})

	t.Run("unknown and out-of-range values are invalid", func(t *testing.T) {
		assert.Error(t, order.StatusUnknown.Validate())
		assert.Error(t, order.Status(99).Validate())
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Requested", order.StatusRequested.String())
	assert.Equal(t, "ManagerApproved", order.StatusManagerApproved.String())
	assert.Equal(t, "IssueRaised", order.StatusIssueRaised.String())
	assert.Equal(t, "PackagingCompleted", order.StatusPackagingCompleted.String())
	assert.Equal(t, "Unknown", order.Status(99).String())
}

func TestStatus_PermitsMessaging(t *testing.T) {
	assert.False(t, order.StatusRequested.PermitsMessaging())
	assert.False(t, order.StatusUnknown.PermitsMessaging())

	// Every post-approval status keeps the ledger open, including the
	// post-delivery phases used for item discrepancy reports.
	for _, s := range order.AllStatuses() {
		if s == order.StatusRequested {
			continue
		}
		assert.True(t, s.PermitsMessaging(), s.String())
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.StatusClosed.IsTerminal())
	assert.False(t, order.StatusReceived.IsTerminal())
}

func TestRole_ParseRole(t *testing.T) {
	t.Run("round-trips every valid role", func(t *testing.T) {
		for _, r := range order.AllRoles() {
			parsed, err := order.ParseRole(r.String())
			require.NoError(t, err)
			assert.Equal(t, r, parsed)
		}
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		_, err := order.ParseRole("Superuser")
		require.Error(t, err)
	})
}

func TestStatus_ParseStatus(t *testing.T) {
	t.Run("round-trips every valid status", func(t *testing.T) {
		for _, s := range order.AllStatuses() {
			parsed, err := order.ParseStatus(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		_, err := order.ParseStatus("Teleported")
		require.Error(t, err)
	})
}

func TestSubstage_ParseSubstage(t *testing.T) {
	t.Run("round-trips none and every arranging substage", func(t *testing.T) {
		for _, s := range append([]order.Substage{order.SubstageNone}, order.ArrangingSubstages()...) {
			parsed, err := order.ParseSubstage(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		_, err := order.ParseSubstage("Shelved")
		require.Error(t, err)
	})
}

func TestSubstage_Validate(t *testing.T) {
	require.NoError(t, order.SubstageNone.Validate())
	for _, s := range order.ArrangingSubstages() {
		require.NoError(t, s.Validate())
	}
	assert.Error(t, order.Substage(42).Validate())
}
