package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"onchainpoker/player/internal/config"
	"onchainpoker/player/internal/session"
	"onchainpoker/player/internal/store"
)

// cliApp carries what PersistentPreRunE builds for the subcommands.
type cliApp struct {
	v       *viper.Viper
	store   store.Store
	session *session.Session
}

// NewRootCmd creates the root command for ocpplayer. It is called once in main.
func NewRootCmd() *cobra.Command {
	a := &cliApp{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:           config.BinaryName,
		Short:         "Mental poker player: commitments, reveals, bets and hand",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("home", config.DefaultHome, "directory holding config.toml and local data")
	flags.Int("deck-size", 0, "number of cards in the deck (default from config)")
	flags.String("store-backend", "", "memdb|goleveldb|redis (default from config)")
	flags.String("redis-addr", "", "redis address for the redis backend")
	flags.String("log-level", "", "trace|debug|info|warn|error")
	flags.String("log-format", "", "plain|json")

	for key, flag := range map[string]string{
		"home":             "home",
		"deck_size":        "deck-size",
		"store.backend":    "store-backend",
		"store.redis_addr": "redis-addr",
		"log.level":        "log-level",
		"log.format":       "log-format",
	} {
		if err := a.v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(
		newInitCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newStateCmd(a),
		newStatusCmd(a),
		newRevealCmd(a),
		newImportCmd(a),
		newAcceptCmd(a),
		newBetCmd(a),
		newDealCmd(a),
	)
	// Close the store after every subcommand, including failed ones, so the
	// database lock is released.
	for _, c := range rootCmd.Commands() {
		runE := c.RunE
		c.RunE = func(cmd *cobra.Command, args []string) (err error) {
			defer func() { err = errors.Join(err, a.close()) }()
			return runE(cmd, args)
		}
	}
	return rootCmd
}

func (a *cliApp) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	logger, err := cfg.Log.NewLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	st, err := store.Open(cmd.Context(), cfg.Store)
	if err != nil {
		return err
	}
	sess := session.New(cfg.PlayerConfig(), st, logger)
	if err := sess.Load(cmd.Context()); err != nil {
		_ = st.Close()
		return fmt.Errorf("load session: %w", err)
	}

	a.store = st
	a.session = sess
	return nil
}

func (a *cliApp) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}
