package commands

import (
	"context"
	"errors"
	"fmt"

	money "github.com/Rhymond/go-money"
	"github.com/spf13/cobra"

	"github.com/mmynk/godutch/internal/auth"
	"github.com/mmynk/godutch/internal/config"
	"github.com/mmynk/godutch/internal/ledger"
	"github.com/mmynk/godutch/internal/models"
	"github.com/mmynk/godutch/internal/server"
	"github.com/mmynk/godutch/internal/storage"
	"github.com/mmynk/godutch/pkg/logging"
)

var errNoPassword = errors.New("--password is required")

// app is the dependency graph shared by all subcommands.
type app struct {
	configPath string
	password   string

	cfg      *config.Config
	store    storage.Store
	ids      *auth.IdentityStore
	ledger   *ledger.Ledger
	deriver  auth.Deriver
	deviceID string
}

// Execute runs the CLI with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "godutch",
		Short:         "Split group expenses equally and track who owes whom",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: env and built-in defaults)")
	root.PersistentFlags().StringVarP(&a.password, "password", "p", "", "your password")

	root.AddCommand(
		registerCmd(a),
		loginCmd(a),
		groupCmd(a),
		expenseCmd(a),
		balancesCmd(a),
	)
	return root
}

func (a *app) open() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if money.GetCurrency(cfg.Display.Currency) == nil {
		return fmt.Errorf("unknown display currency %q", cfg.Display.Currency)
	}
	logging.Setup(cfg.Log.Level)

	store, err := server.OpenStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	a.cfg = cfg
	a.store = store
	a.ids = auth.NewIdentityStore(store)
	a.ledger = ledger.New(store, ledger.WithMaxCodeAttempts(cfg.Ledger.MaxCodeAttempts))
	a.deriver = auth.NewDeriver(cfg.Auth.Derivation)
	a.deviceID = cfg.Auth.DeviceID
	if a.deviceID == "" {
		a.deviceID = auth.DeviceFingerprint()
	}
	return nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

func (a *app) credential() (auth.Credential, error) {
	if a.password == "" {
		return auth.Credential{}, errNoPassword
	}
	return a.deriver.Derive(a.deviceID, a.password)
}

// login authenticates the caller.
func (a *app) login(ctx context.Context) (models.Identity, error) {
	cred, err := a.credential()
	if err != nil {
		return models.Identity{}, err
	}
	id, err := a.ids.Authenticate(ctx, cred)
	if errors.Is(err, auth.ErrInvalidCredential) {
		return models.Identity{}, errors.New("invalid credentials for this device; run 'godutch register' first")
	}
	return id, err
}

// memberGroup loads a group the caller belongs to.
func (a *app) memberGroup(ctx context.Context, code, userID string) (*models.Group, error) {
	group, err := a.ledger.Group(ctx, code)
	if err != nil {
		return nil, err
	}
	if !group.IsMember(userID) {
		return nil, fmt.Errorf("you are not a member of group %s", group.Code)
	}
	return group, nil
}
