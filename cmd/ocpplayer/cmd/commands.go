package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"onchainpoker/player/internal/cards"
	"onchainpoker/player/internal/player"
	"onchainpoker/player/internal/session"
)

func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}

// readJSONArg decodes the file named by arg, or stdin when arg is "-".
func readJSONArg(cmd *cobra.Command, arg string, v any) error {
	var r io.Reader = cmd.InOrStdin()
	if arg != "-" {
		f, err := os.Open(arg)
		if err != nil {
			return fmt.Errorf("open %s: %w", arg, err)
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", arg, err)
	}
	return nil
}

func newInitCmd(a *cliApp) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a local player with fresh secrets and points and print its public snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pid := id
			if pid == "" {
				pid = uuid.NewString()
			}
			snap, err := a.session.CreateLocal(cmd.Context(), pid)
			if err != nil {
				return err
			}
			return printJSON(cmd, snap)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "player identity (random UUID when empty)")
	return cmd
}

func newListCmd(a *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List known players",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printJSON(cmd, a.session.IDs())
		},
	}
}

func newShowCmd(a *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print the public snapshot shared with other players",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := a.session.Snapshot(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, snap)
		},
	}
}

func newStateCmd(a *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "state <id>",
		Short: "Print the full private state, secrets included (never share this)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.session.State(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, st)
		},
	}
}

func newStatusCmd(a *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id>",
		Short: "Print commitment, reveal, bet and fold status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.session.Status(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, st)
		},
	}
}

func newRevealCmd(a *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "reveal <id> <index>...",
		Short: "Print secrets at the given slots as a reveal batch for peers",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reveals := make([]session.Reveal, 0, len(args)-1)
			for _, arg := range args[1:] {
				i, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("index %q: %w", arg, err)
				}
				sec, err := a.session.Secret(args[0], i)
				if err != nil {
					return err
				}
				reveals = append(reveals, session.Reveal{Index: i, Secret: sec})
			}
			return printJSON(cmd, reveals)
		},
	}
}

func newImportCmd(a *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "import <snapshot.json|->",
		Short: "Add a remote player from its public snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var snap player.Snapshot
			if err := readJSONArg(cmd, args[0], &snap); err != nil {
				return err
			}
			if err := a.session.Join(cmd.Context(), snap); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "imported %s\n", snap.ID)
			return err
		},
	}
}

func newAcceptCmd(a *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "accept <id> <reveals.json|->",
		Short: "Verify a peer's reveal batch against its commitments",
		Long: "Verify a peer's reveal batch against its commitments. Matching secrets are stored; " +
			"the command fails when any reveal mismatches, conflicts with an earlier reveal, or is out of range.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var reveals []session.Reveal
			if err := readJSONArg(cmd, args[1], &reveals); err != nil {
				return err
			}
			report, err := a.session.Reveal(cmd.Context(), args[0], reveals)
			if err != nil {
				return err
			}
			if err := printJSON(cmd, report); err != nil {
				return err
			}
			if !report.OK() {
				return fmt.Errorf("player %s sent invalid reveals", args[0])
			}
			return nil
		},
	}
}

func newBetCmd(a *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "bet <id> <check|call|bet|raise|allin|fold> [amount]",
		Short: "Record a bet",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := player.ParseBetKind(args[1])
			if err != nil {
				return err
			}
			bet := player.Bet{Kind: kind}
			if len(args) == 3 {
				if bet.Amount, err = strconv.ParseUint(args[2], 10, 64); err != nil {
					return fmt.Errorf("amount %q: %w", args[2], err)
				}
			}
			folded, err := a.session.PlaceBet(cmd.Context(), args[0], bet)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "recorded %s (folded=%t)\n", bet, folded)
			return err
		},
	}
}

func newDealCmd(a *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "deal <id> <card>...",
		Short: "Add cards (e.g. As Td 2c) to a player's hand",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := cards.ParseAll(args[1:])
			if err != nil {
				return err
			}
			return a.session.Deal(cmd.Context(), args[0], cs...)
		},
	}
}
