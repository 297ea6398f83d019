package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"realorai-service/internal/app"
	"realorai-service/internal/catalog"
	"realorai-service/internal/client"
	"realorai-service/internal/config"
	"realorai-service/internal/domain"
	"realorai-service/internal/logger"
)

var errQuizAbandoned = errors.New("quiz abandoned")

type playOptions struct {
	ageGroup string
	seed     int64
	server   string
}

// NewPlayCmd plays one quiz in the terminal and reports the score.
func NewPlayCmd(configPath *string) *cobra.Command {
	var opts playOptions
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a round of Real or AI in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOptional(*configPath)
			if err != nil {
				return err
			}
			setupLogger(cfg)
			opts.server = statsServer(opts.server, cfg)
			return runPlay(cmd.Context(), cfg, opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&opts.ageGroup, "age-group", "", "age group (10-19, 20-29, 30-39, 40-49, 50+); prompted when empty")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "shuffle seed; 0 picks one from the clock")
	cmd.Flags().StringVar(&opts.server, "server", "", "stats server base URL (default $STATS_SERVER or client.server)")
	return cmd
}

func runPlay(ctx context.Context, cfg config.Config, opts playOptions, in io.Reader, out io.Writer) error {
	cat, err := catalog.Load(cfg.Quiz.CatalogPath)
	if err != nil {
		return err
	}

	input := bufio.NewScanner(in)

	group, err := chooseAgeGroup(opts.ageGroup, input, out)
	if err != nil {
		return err
	}

	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	session := app.NewSession(uuid.NewString(), cat, rand.New(rand.NewSource(seed)))
	ctx = logger.NewContext(ctx, logger.FromContext(ctx).WithField("session_id", session.ID()))
	session.SetAgeGroup(group)

	for session.Phase() != app.PhaseComplete {
		pair, ok := session.CurrentPair()
		if !ok {
			break
		}
		renderRound(out, session.Progress(), pair)

		side, err := askSide(input, out)
		if err != nil {
			return err
		}
		session.SelectOption(side)
		ans, ok := session.SubmitAnswer()
		if !ok {
			continue
		}
		if ans.Correct {
			fmt.Fprintln(out, "Correct!")
		} else {
			fmt.Fprintf(out, "Wrong. The real one was on the %s.\n", pair.AuthenticSide())
		}
	}

	st := session.State()
	renderScore(out, app.ScoreOf(st), app.ScoreByKind(st))

	reporter := client.NewReporter(client.NewStatsClient(opts.server))
	if reporter.SubmitScore(ctx, st) {
		fmt.Fprintln(out, "Score submitted.")
	} else {
		fmt.Fprintln(out, "Could not submit score.")
	}
	reporter.FetchLeaderboard(ctx)
	renderLeaderboard(out, reporter.Leaderboard())
	return nil
}

func chooseAgeGroup(flag string, input *bufio.Scanner, out io.Writer) (domain.AgeGroup, error) {
	if flag != "" {
		return domain.ParseAgeGroup(flag)
	}
	for {
		fmt.Fprintln(out, "Select your age group:")
		for i, g := range domain.AgeGroups {
			fmt.Fprintf(out, "  %d) %s\n", i+1, g)
		}
		fmt.Fprint(out, "> ")
		if !input.Scan() {
			return "", fmt.Errorf("%w: no age group chosen", errQuizAbandoned)
		}
		raw := strings.TrimSpace(input.Text())
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= len(domain.AgeGroups) {
			return domain.AgeGroups[n-1], nil
		}
		if g, err := domain.ParseAgeGroup(raw); err == nil {
			return g, nil
		}
		fmt.Fprintf(out, "%q is not an age group.\n", raw)
	}
}

func askSide(input *bufio.Scanner, out io.Writer) (domain.Side, error) {
	for {
		fmt.Fprint(out, "Which one is real? [l/r] > ")
		if !input.Scan() {
			return domain.SideNone, errQuizAbandoned
		}
		if side := domain.ParseSide(strings.TrimSpace(input.Text())); side != domain.SideNone {
			return side, nil
		}
		fmt.Fprintln(out, "Answer l or r.")
	}
}
