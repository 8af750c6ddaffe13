package main

// documents is the portfolio corpus. The career-summary and stack-overview
// sources back the rendered reports, the rest exist purely for retrieval.
var documents = []docSeed{
	{
		SourceID: "career-summary",
		Content: `Career summary.

I am a backend engineer with six years of experience building and operating
Go services in production. My current focus is event-driven architectures:
I designed and run a notification platform that processes several million
messages a day over NATS JetStream, with Postgres as the system of record
and Redis for hot session state.

Previously I spent three years at a fintech startup, where I owned the
payment-reconciliation pipeline end to end, from ingestion of bank
statements through matching and ledger posting. That system cut manual
reconciliation effort by roughly 80 percent.

I care about boring, observable infrastructure: structured logging,
distributed tracing, and migrations that can be rolled back. I am
comfortable owning a service from schema design to on-call.

I am open to senior backend or platform roles, remote or hybrid. The
fastest way to reach me is the contact option in this chat.`,
	},
	{
		SourceID: "stack-overview",
		Content: `Stack overview.

The backend for this site is a Go monolith built on Fiber, organised into
controller, service and repository layers with a unit-of-work wrapper
around GORM transactions. Postgres stores sessions, messages and the
retrieval index; pgvector provides approximate nearest-neighbour search
over embedded document and code chunks.

Asynchronous work rides on Watermill with an in-process Go channel
broker, and turn events are mirrored to NATS JetStream for external
consumers. Redis backs live session state and fans out owner alerts to
websocket clients across instances.

Observability is zap structured logging with lumberjack rotation, plus
OpenTelemetry traces exported over OTLP. Configuration is plain
environment variables loaded at startup.`,
	},
	{
		SourceID: "project-notification-platform",
		Content: `Project: notification platform.

A multi-tenant notification service delivering email, push and in-app
messages. Producers publish domain events to NATS JetStream; a pool of
consumers renders templates, applies per-tenant rate limits and hands the
result to channel-specific senders. Delivery state lives in Postgres and
a Redis cache absorbs read load from the in-app inbox.

Hard parts: exactly-once semantics across retries (solved with idempotency
keys and a claim table), and template rendering fast enough to keep p99
under 50ms. Throughput in production is around 3 million messages a day.`,
	},
	{
		SourceID: "project-reconciliation",
		Content: `Project: payment reconciliation pipeline.

Ingests bank statement files (MT940 and CSV), normalises entries, and
matches them against expected ledger postings using a scoring model over
amount, date window and reference text. Unmatched entries land in a review
queue with suggested candidates ranked for the operations team.

Built in Go with Postgres, deployed as a nightly batch plus an on-demand
API. Matching accuracy reached 97 percent automatic, and the review queue
shrank from hundreds of entries a day to a few dozen.`,
	},
	{
		SourceID: "about-interests",
		Content: `Outside of work.

Away from the keyboard I train Muay Thai four times a week and have done
for about five years, including one amateur fight (a draw, which everyone
involved agrees was generous to me). I also bake sourdough with mixed
results and keep a reading log that is mostly systems papers and the
occasional novel I abandon halfway.`,
	},
	{
		SourceID: "working-style",
		Content: `Working style.

I prefer small, reviewable changes behind feature flags over big-bang
releases, and I write design notes before code for anything that touches
a schema or a wire format. I default to pairing when a problem is vague
and solo deep work once the shape is clear.

On teams I gravitate towards the glue work: CI, local dev ergonomics,
and making the on-call rotation less painful. I believe most incidents
are process failures wearing a technical costume.`,
	},
}

var codeSamples = []codeSeed{
	{
		SourceID: "code-retry-backoff",
		Citation: "notification-platform/internal/delivery/retry.go",
		Content: `func (d *Dispatcher) sendWithRetry(ctx context.Context, msg *Message) error {
	backoff := 100 * time.Millisecond
	for attempt := 0; attempt < d.maxAttempts; attempt++ {
		err := d.sender.Send(ctx, msg)
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return fmt.Errorf("permanent delivery failure: %w", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
			backoff *= 2
		}
	}
	return ErrMaxAttemptsExceeded
}`,
	},
	{
		SourceID: "code-idempotency-claim",
		Citation: "notification-platform/internal/consumer/claim.go",
		Content: `// Claim inserts a processing claim for the event. A unique violation
// means another consumer already owns it, so the caller must ack and
// move on without side effects.
func (r *claimRepo) Claim(ctx context.Context, eventID string) (bool, error) {
	res := r.db.WithContext(ctx).Exec(
		"INSERT INTO event_claims (event_id, claimed_at) VALUES (?, now()) ON CONFLICT DO NOTHING",
		eventID,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}`,
	},
	{
		SourceID: "code-statement-matcher",
		Citation: "reconciliation/internal/matching/score.go",
		Content: `func scoreCandidate(entry StatementEntry, posting LedgerPosting) float64 {
	score := 0.0
	if entry.Amount.Equal(posting.Amount) {
		score += 0.5
	}
	dayDiff := math.Abs(entry.ValueDate.Sub(posting.DueDate).Hours() / 24)
	if dayDiff <= 3 {
		score += 0.3 * (1 - dayDiff/3)
	}
	score += 0.2 * referenceSimilarity(entry.Reference, posting.Reference)
	return score
}`,
	},
	{
		SourceID: "code-ratelimit-window",
		Citation: "notification-platform/internal/tenant/ratelimit.go",
		Content: `// Allow implements a sliding window over Redis sorted sets keyed by
// tenant. Entries older than the window are trimmed on every call, so
// the set never grows beyond one window of traffic.
func (l *Limiter) Allow(ctx context.Context, tenantID string) (bool, error) {
	now := time.Now().UnixNano()
	windowStart := now - l.window.Nanoseconds()
	key := "ratelimit:" + tenantID

	pipe := l.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	count := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return count.Val() < l.limit, nil
}`,
	},
}
