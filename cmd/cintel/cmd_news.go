package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"cintel/internal/newsqueue"
	"cintel/internal/snapshot"
)

// rankedNews is one line of the news command output.
type rankedNews struct {
	newsqueue.Entry
	Category newsqueue.Category `json:"category"`
	Impact   newsqueue.Impact   `json:"impact"`
}

func (a *app) newsCmd() *cobra.Command {
	var (
		file       string
		maxAgeDays int
	)
	cmd := &cobra.Command{
		Use:   "news",
		Short: "Rank a batch of news items by priority",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				file = a.cfg.NewsPath
			}
			if file == "" {
				return errors.New("no news file: pass --file or set CI_NEWS_PATH")
			}

			items, err := snapshot.LoadNewsFile(file)
			if err != nil {
				return err
			}

			feed := snapshot.NewNewsFeed()
			for _, item := range items {
				if _, err := feed.Add(item); err != nil {
					a.logger.Warn().Err(err).Str("id", item.ID).Msg("Skipping news item")
				}
			}
			if maxAgeDays > 0 {
				cutoff := time.Now().UTC().AddDate(0, 0, -maxAgeDays)
				if dropped := feed.PruneOlderThan(cutoff); dropped > 0 {
					a.logger.Debug().Int("dropped", dropped).Time("cutoff", cutoff).Msg("Pruned stale news")
				}
			}
			n := a.engine.IngestFeed(feed)
			a.logger.Debug().Int("items", n).Str("file", file).Msg("News queued")

			ranked := a.engine.RankedNews()
			out := make([]rankedNews, 0, len(ranked))
			for _, e := range ranked {
				out = append(out, rankedNews{
					Entry:    e,
					Category: newsqueue.CategorizeNews(e.Item),
					Impact:   newsqueue.CalculateNewsImpact(e.Item),
				})
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "news JSON file (overrides CI_NEWS_PATH)")
	cmd.Flags().IntVar(&maxAgeDays, "max-age-days", 0, "drop items older than this many days (0 keeps all)")
	return cmd
}
