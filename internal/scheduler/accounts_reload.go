package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/homedeck/internal/domain"
	"github.com/MrSnakeDoc/homedeck/internal/logger"
	"github.com/MrSnakeDoc/homedeck/internal/sources/accounts"
)

// AccountWriter adds accounts; it is satisfied by users.Directory.
type AccountWriter interface {
	Add(username, password string, role domain.Role) (bool, error)
}

// ReloadResult summarizes one provisioning pass.
type ReloadResult struct {
	Added    int
	Existing int
	Skipped  int
}

// AccountsReloader provisions accounts declared in a yaml file: at start,
// every interval, and whenever the manual trigger fires. Existing accounts
// are left untouched.
type AccountsReloader struct {
	loader        *accounts.Loader
	users         AccountWriter
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewAccountsReloader creates a new accounts reloader
func NewAccountsReloader(
	accountsFile string,
	users AccountWriter,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *AccountsReloader {
	return &AccountsReloader{
		loader:        accounts.NewLoader(accountsFile),
		users:         users,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the file once and then keeps reloading it in the background.
// A failing initial load is returned to the caller.
func (ar *AccountsReloader) Start(ctx context.Context) error {
	if _, err := ar.Reload(ctx); err != nil {
		return fmt.Errorf("initial accounts reload failed: %w", err)
	}

	ticker := time.NewTicker(ar.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := ar.Reload(ctx); err != nil {
					ar.logger.Error("failed to reload accounts",
						logger.Error(err))
				}
			case <-ar.manualTrigger:
				ar.logger.Info("manual accounts reload triggered")
				if _, err := ar.Reload(ctx); err != nil {
					ar.logger.Error("failed to reload accounts",
						logger.Error(err))
				}
			case <-ar.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (ar *AccountsReloader) Stop() {
	close(ar.stopCh)
}

// Reload reads the accounts file and adds every valid account that does not
// exist yet.
func (ar *AccountsReloader) Reload(ctx context.Context) (ReloadResult, error) {
	var res ReloadResult

	file, err := ar.loader.Load()
	if err != nil {
		return res, err
	}

	declared, invalid := accounts.Map(file)
	for _, err := range invalid {
		ar.logger.Warn("skipping account entry",
			logger.String("file", ar.loader.Path()),
			logger.Error(err))
	}
	res.Skipped = len(invalid)

	for _, u := range declared {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		added, err := ar.users.Add(u.Username, u.Password, u.Role)
		if err != nil {
			return res, fmt.Errorf("failed to provision %s: %w", u.Username, err)
		}
		if !added {
			res.Existing++
			continue
		}
		res.Added++
		ar.logger.Info("account provisioned",
			logger.String("username", u.Username),
			logger.String("role", string(u.Role)))
	}

	ar.logger.Info("accounts reloaded",
		logger.Int("added", res.Added),
		logger.Int("existing", res.Existing),
		logger.Int("skipped", res.Skipped))
	return res, nil
}
