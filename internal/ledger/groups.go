package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mmynk/godutch/internal/models"
	"github.com/mmynk/godutch/internal/storage"
)

// CreateGroup creates a group owned by owner with a fresh group code.
//
// Candidate codes that collide with an active group are regenerated, up to
// the configured number of attempts; after that ErrCodeGenerationExhausted
// is returned. The group record is written first and the registry entry
// second, so a group only becomes joinable once both exist.
func (l *Ledger) CreateGroup(ctx context.Context, owner string) (*models.Group, error) {
	if owner == "" {
		return nil, ErrNotAuthorized
	}

	reg, err := l.store.LoadRegistry(ctx)
	if err != nil {
		return nil, classify(err)
	}

	for attempt := 1; attempt <= l.maxCodeAttempts; attempt++ {
		code, err := l.codes()
		if err != nil {
			return nil, fmt.Errorf("failed to generate group code: %w", err)
		}
		if _, taken := reg.Groups[code]; taken || !ValidCode(code) {
			slog.Debug("Group code collision", "code", code, "attempt", attempt)
			continue
		}

		now := l.now().Unix()
		group := &models.Group{
			Code:      code,
			Creator:   owner,
			Members:   []string{owner},
			Expenses:  []models.Expense{},
			CreatedAt: now,
		}

		err = l.store.CreateGroup(ctx, group)
		if errors.Is(err, storage.ErrExists) {
			slog.Debug("Group code collision", "code", code, "attempt", attempt)
			continue
		}
		if err != nil {
			return nil, classify(err)
		}

		err = l.store.UpdateRegistry(ctx, func(r *models.Registry) error {
			if _, taken := r.Groups[code]; taken {
				return errCodeTaken
			}
			r.Groups[code] = models.GroupEntry{Creator: owner, CreatedAt: now}
			return nil
		})
		if err == nil {
			return group, nil
		}

		// Roll back the group record so no unregistered record is left behind
		if delErr := l.store.DeleteGroup(ctx, code); delErr != nil {
			slog.Warn("Failed to remove unregistered group record", "code", code, "error", delErr)
		}
		if errors.Is(err, errCodeTaken) {
			continue
		}
		return nil, classify(err)
	}

	return nil, ErrCodeGenerationExhausted
}

// JoinGroup adds user to the group's members. Joining a group one already
// belongs to changes nothing and returns the current group.
func (l *Ledger) JoinGroup(ctx context.Context, code, user string) (*models.Group, error) {
	code = NormalizeCode(code)
	if user == "" {
		return nil, ErrNotAuthorized
	}
	if err := l.requireRegistered(ctx, code); err != nil {
		return nil, err
	}

	var joined *models.Group
	err := l.store.UpdateGroup(ctx, code, func(g *models.Group) error {
		if g.IsMember(user) {
			joined = g.Clone()
			return errUnchanged
		}
		g.Members = append(g.Members, user)
		joined = g.Clone()
		return nil
	})
	if err != nil && !errors.Is(err, errUnchanged) {
		return nil, classify(err)
	}

	return joined, nil
}

// ListGroupsFor returns the sorted codes of every active group user belongs to.
func (l *Ledger) ListGroupsFor(ctx context.Context, user string) ([]string, error) {
	reg, err := l.store.LoadRegistry(ctx)
	if err != nil {
		return nil, classify(err)
	}

	var (
		mu    sync.Mutex
		codes = []string{}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.loadConcurrency)
	for code := range reg.Groups {
		g.Go(func() error {
			group, err := l.store.GetGroup(gctx, code)
			if errors.Is(err, storage.ErrNotFound) {
				// deleted since the registry was read
				return nil
			}
			if err != nil {
				return err
			}
			if group.IsMember(user) {
				mu.Lock()
				codes = append(codes, code)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, classify(err)
	}

	sort.Strings(codes)
	return codes, nil
}

// DeleteGroup permanently removes a group. Only its creator may do so.
//
// The registry entry is removed first, which makes the group unreachable.
// Once that has committed the delete has succeeded: a failure to remove the
// group record afterwards is logged and leaves an orphan that no operation
// can reach.
func (l *Ledger) DeleteGroup(ctx context.Context, code, requester string) error {
	code = NormalizeCode(code)
	if !ValidCode(code) {
		return ErrGroupNotFound
	}

	err := l.store.UpdateRegistry(ctx, func(r *models.Registry) error {
		entry, ok := r.Groups[code]
		if !ok {
			return ErrGroupNotFound
		}
		if requester == "" || entry.Creator != requester {
			return ErrNotAuthorized
		}
		delete(r.Groups, code)
		return nil
	})
	if err != nil {
		return classify(err)
	}

	if err := l.store.DeleteGroup(ctx, code); err != nil && !errors.Is(err, storage.ErrNotFound) {
		slog.Error("Group unregistered but record not removed", "code", code, "error", err)
	}
	return nil
}

func (l *Ledger) requireRegistered(ctx context.Context, code string) error {
	if !ValidCode(code) {
		return ErrGroupNotFound
	}
	reg, err := l.store.LoadRegistry(ctx)
	if err != nil {
		return classify(err)
	}
	if _, ok := reg.Groups[code]; !ok {
		return ErrGroupNotFound
	}
	return nil
}
