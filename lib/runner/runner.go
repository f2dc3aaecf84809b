package runner

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jasidev/trendpost/lib/history"
	"github.com/jasidev/trendpost/lib/logger"
	"github.com/jasidev/trendpost/lib/selector"
	"github.com/jasidev/trendpost/lib/types"
)

// Sourcer produces the candidate topics for a run.
type Sourcer interface {
	Topics(ctx context.Context) ([]types.Topic, error)
}

// Generator writes a post for the selected topic.
type Generator interface {
	Generate(ctx context.Context, topic types.Topic) (string, error)
}

// Publisher submits the post and returns its URN.
type Publisher interface {
	Publish(ctx context.Context, text string) (string, error)
}

// Runner sequences one run: source, select, generate, publish, record.
// Any stage error aborts the run. In dry-run mode the publish call is
// skipped, the post is printed to Out, and no history entry is written
// (a dry run records nothing, so an unposted topic stays eligible).
type Runner struct {
	Sourcer   Sourcer
	Generator Generator
	Publisher Publisher
	Store     history.Store
	Window    time.Duration
	DryRun    bool
	Out       io.Writer
	Log       *logger.Logger
}

func (r *Runner) Run(ctx context.Context) error {
	candidates, err := r.Sourcer.Topics(ctx)
	if err != nil {
		return fmt.Errorf("topic sourcing: %w", err)
	}
	r.Log.Info("collected %v topic candidates", len(candidates))

	entries, err := r.Store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	topic, err := selector.Select(candidates, entries, r.Window)
	if err != nil {
		return fmt.Errorf("topic selection: %w", err)
	}
	r.Log.Info("selected topic: %v", topic.Title)

	text, err := r.Generator.Generate(ctx, topic)
	if err != nil {
		return fmt.Errorf("content generation: %w", err)
	}

	if r.DryRun {
		fmt.Fprintf(r.Out, "--- dry run, not publishing ---\nTopic: %s\n\n%s\n", topic.Title, text)
		r.Log.Info("dry run finished, nothing published or recorded")
		return nil
	}

	postURN, err := r.Publisher.Publish(ctx, text)
	if err != nil {
		return fmt.Errorf("publishing: %w", err)
	}

	entry := types.HistoryEntry{
		Topic:      topic.Title,
		Normalized: selector.Normalize(topic.Title),
		PostedAt:   time.Now().UTC(),
		Content:    text,
		PostURN:    postURN,
	}
	if err := r.Store.Append(ctx, entry); err != nil {
		// The post is live; a failed append means the topic may repeat
		// next run, which the selector treats as best-effort anyway.
		return fmt.Errorf("recording history after publish: %w", err)
	}
	r.Log.Info("posted and recorded topic: %v", topic.Title)
	return nil
}
