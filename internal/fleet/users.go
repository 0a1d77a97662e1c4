package fleet

import (
	"fmt"

	"github.com/mesh-intelligence/fleetops/internal/notify"
	"github.com/mesh-intelligence/fleetops/pkg/types"
)

// ListUsers returns the user accounts matching filter.
func (s *Service) ListUsers(filter map[string]any) ([]*types.User, error) {
	return fetchAll[*types.User](s, types.TableUsers, filter)
}

// GetUser returns one user.
func (s *Service) GetUser(id string) (*types.User, error) {
	return getOne[*types.User](s, types.TableUsers, id)
}

// AddUser appends u under max(id)+1 with lastLogin "Never".
func (s *Service) AddUser(u *types.User) (Outcome[*types.User], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.LastLogin = "Never"
	if err := s.create(u); err != nil {
		return Outcome[*types.User]{}, err
	}
	n := s.done(types.TableUsers, "add",
		notify.New("User Added", fmt.Sprintf("%s has been added to the system.", u.Name)))
	return Outcome[*types.User]{Item: u, Notice: n}, nil
}

// UpdateUser replaces the user with the given ID.
func (s *Service) UpdateUser(id string, u *types.User) (Outcome[*types.User], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.LastLogin = "Just updated"
	if err := s.replace(id, u); err != nil {
		return Outcome[*types.User]{}, err
	}
	n := s.done(types.TableUsers, "update",
		notify.New("User Updated", fmt.Sprintf("%s has been updated.", u.Name)))
	return Outcome[*types.User]{Item: u, Notice: n}, nil
}

// DeleteUser removes a user account.
func (s *Service) DeleteUser(id string) (notify.Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.GetUser(id)
	if err != nil {
		return notify.Notice{}, err
	}
	if err := s.remove(types.TableUsers, id); err != nil {
		return notify.Notice{}, err
	}
	return s.done(types.TableUsers, "delete",
		notify.Destructive("User Removed", fmt.Sprintf("%s has been removed from the system.", u.Name))), nil
}

// ResetPassword acknowledges a reset email. No mail is sent.
func (s *Service) ResetPassword(id string) (notify.Notice, error) {
	u, err := s.GetUser(id)
	if err != nil {
		return notify.Notice{}, err
	}
	return s.notifier.Notify(notify.New("Password Reset",
		fmt.Sprintf("Password reset email sent to %s", u.Email))), nil
}
