package fleet

import (
	"github.com/mesh-intelligence/fleetops/internal/notify"
	"github.com/mesh-intelligence/fleetops/pkg/types"
)

// ListNotifications returns the header notifications matching filter.
func (s *Service) ListNotifications(filter map[string]any) ([]*types.Notification, error) {
	return fetchAll[*types.Notification](s, types.TableNotifications, filter)
}

// UnreadCount returns the number on the header bell.
func (s *Service) UnreadCount() (int, error) {
	unread, err := s.ListNotifications(map[string]any{"read": "false"})
	if err != nil {
		return 0, err
	}
	return len(unread), nil
}

// MarkNotificationRead flags one notification as read.
func (s *Service) MarkNotificationRead(id string) (*types.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := modify(s, types.TableNotifications, id, func(n *types.Notification) error {
		n.MarkRead()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.observer != nil {
		s.observer.Mutation(types.TableNotifications, "read")
	}
	return n, nil
}

// MarkAllNotificationsRead flags every notification as read.
func (s *Service) MarkAllNotificationsRead() (notify.Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	unread, err := s.ListNotifications(map[string]any{"read": "false"})
	if err != nil {
		return notify.Notice{}, err
	}
	for _, n := range unread {
		n.MarkRead()
		if err := s.put(n); err != nil {
			return notify.Notice{}, err
		}
	}
	return s.done(types.TableNotifications, "read_all",
		notify.New("Notifications", "All notifications marked as read")), nil
}
