package fleet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/fleetops/pkg/types"
)

func TestUserCRUD(t *testing.T) {
	svc, _, _ := newTestService(t)

	u := types.NewUser()
	u.Name = "Nora Park"
	u.Email = "nora@company.com"
	u.Role = types.RoleOperator
	out, err := svc.AddUser(u)
	require.NoError(t, err)
	assert.Equal(t, "6", out.Item.ID)
	assert.Equal(t, "Never", out.Item.LastLogin)

	_, err = svc.DeleteUser("6")
	require.NoError(t, err)
	_, err = svc.DeleteUser("2")
	require.NoError(t, err)

	// IDs follow the highest remaining ID, so 6 is reissued but never 5.
	again, err := svc.AddUser(&types.User{Name: "Omar Diaz", Email: "omar@company.com", Role: types.RoleViewer, Status: types.UserActive})
	require.NoError(t, err)
	assert.Equal(t, "6", again.Item.ID)

	edit, err := svc.GetUser("4")
	require.NoError(t, err)
	edit.Status = types.UserActive
	upd, err := svc.UpdateUser("4", edit)
	require.NoError(t, err)
	assert.Equal(t, "Just updated", upd.Item.LastLogin)
	assert.Equal(t, "Lisa Brown has been updated.", upd.Notice.Description)
}

func TestResetPassword(t *testing.T) {
	svc, _, obs := newTestService(t)

	n, err := svc.ResetPassword("3")
	require.NoError(t, err)
	assert.Equal(t, "Password reset email sent to mike@company.com", n.Description)
	assert.Empty(t, obs.calls)

	_, err = svc.ResetPassword("99")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestListUsersByRole(t *testing.T) {
	svc, _, _ := newTestService(t)

	admins, err := svc.ListUsers(map[string]any{"role": types.RoleAdmin, "status": "all"})
	require.NoError(t, err)
	require.Len(t, admins, 2)
	assert.Equal(t, "John Smith", admins[0].Name)
	assert.Equal(t, "David Wilson", admins[1].Name)
}
