package collab

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hr95savage/semantic-blocks/internal/config"
	"github.com/hr95savage/semantic-blocks/internal/metadata"
	"github.com/hr95savage/semantic-blocks/internal/pipeline"
	"github.com/hr95savage/semantic-blocks/pkg/failure"
	"github.com/hr95savage/semantic-blocks/pkg/limiter"
	"github.com/hr95savage/semantic-blocks/pkg/retry"
	"github.com/hr95savage/semantic-blocks/pkg/timeutil"
)

var _ JobWorker = (*LocalJobWorker)(nil)

// LocalJobWorker is an in-process JobWorker: a small pool of goroutines
// draining a buffered channel, one per-host rate limiter so bursts of jobs
// against the same source don't starve others, and retry on transient
// failures (an in-memory ObjectStore.Put essentially never fails, but the
// retry path exists for the real store a production deployment swaps in).
type LocalJobWorker struct {
	store        ObjectStore
	metadataSink metadata.MetadataSink
	cfg          config.Config
	rateLimiter  limiter.RateLimiter
	retryParam   retry.RetryParam

	mu      sync.Mutex
	results map[JobID]JobResult

	queue chan Job
	wg    sync.WaitGroup
}

// NewLocalJobWorker starts workerCount goroutines pulling from a queueSize
// buffered channel. Every job's extraction output is written to store under
// its job ID.
func NewLocalJobWorker(store ObjectStore, sink metadata.MetadataSink, cfg config.Config, workerCount, queueSize int) *LocalJobWorker {
	if workerCount < 1 {
		workerCount = 1
	}
	w := &LocalJobWorker{
		store:        store,
		metadataSink: sink,
		cfg:          cfg,
		rateLimiter:  limiter.NewConcurrentRateLimiter(),
		retryParam: retry.NewRetryParam(
			50*time.Millisecond, 25*time.Millisecond, 1, 3,
			timeutil.NewBackoffParam(50*time.Millisecond, 2, time.Second),
		),
		results: make(map[JobID]JobResult),
		queue:   make(chan Job, queueSize),
	}
	w.rateLimiter.SetBaseDelay(10 * time.Millisecond)
	for i := 0; i < workerCount; i++ {
		w.wg.Add(1)
		go w.drain()
	}
	return w
}

func (w *LocalJobWorker) Submit(ctx context.Context, job Job) (JobID, failure.ClassifiedError) {
	if job.ID == "" {
		job.ID = JobID(uuid.NewString())
	}
	w.setResult(JobResult{ID: job.ID, Status: JobQueued})

	select {
	case w.queue <- job:
		return job.ID, nil
	case <-ctx.Done():
		return "", &CollabError{Message: "submit canceled", Retryable: true, Cause: ErrCauseQueueFull}
	default:
		return "", &CollabError{Message: "queue is full", Retryable: true, Cause: ErrCauseQueueFull}
	}
}

func (w *LocalJobWorker) Result(_ context.Context, id JobID) (JobResult, failure.ClassifiedError) {
	w.mu.Lock()
	defer w.mu.Unlock()
	res, ok := w.results[id]
	if !ok {
		return JobResult{}, &CollabError{Message: string(id), Retryable: false, Cause: ErrCauseObjectNotFound}
	}
	return res, nil
}

func (w *LocalJobWorker) setResult(res JobResult) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.results[res.ID] = res
}

func (w *LocalJobWorker) drain() {
	defer w.wg.Done()
	for job := range w.queue {
		w.process(job)
	}
}

func (w *LocalJobWorker) process(job Job) {
	w.setResult(JobResult{ID: job.ID, Status: JobRunning})

	host := hostOf(job.SourceURL)
	w.rateLimiter.MarkLastFetchAsNow(host)
	time.Sleep(w.rateLimiter.ResolveDelay(host))

	result := retry.Retry(w.retryParam, func() (ObjectRecord, failure.ClassifiedError) {
		return w.extractAndStore(job)
	})

	if result.IsFailure() {
		w.recordFailure(job, result.Err())
		w.setResult(JobResult{ID: job.ID, Status: JobFailed, Error: result.Err().Error(), CompletedAt: time.Now()})
		return
	}
	w.setResult(JobResult{ID: job.ID, Status: JobSucceeded, ObjectKey: result.Value().Key, CompletedAt: time.Now()})
}

// extractAndStore runs the pure core pipeline and persists the
// pretty-printed JSON document; the store itself is the one that
// content-addresses the write (pkg/hashutil), so a re-submitted job with
// identical HTML is a no-op write there.
func (w *LocalJobWorker) extractAndStore(job Job) (ObjectRecord, failure.ClassifiedError) {
	doc := pipeline.Extract(job.HTML, job.SourceURL, w.cfg, w.metadataSink)

	body, err := doc.MarshalPretty()
	if err != nil {
		return ObjectRecord{}, &CollabError{Message: err.Error(), Retryable: false, Cause: ErrCausePackagingFail}
	}

	key := string(job.ID) + ".json"
	return w.store.Put(context.Background(), key, body)
}

// recordFailure reports a job's terminal error to the metadata sink. The
// CollabError.Cause informs the observability record only; the retry/abort
// decision has already been made by pkg/retry against CollabError.Retryable.
func (w *LocalJobWorker) recordFailure(job Job, err failure.ClassifiedError) {
	collabErr, ok := err.(*CollabError)
	if !ok {
		w.metadataSink.RecordError(time.Now(), "collab", "LocalJobWorker.process", metadata.CauseUnknown, err.Error(), nil)
		return
	}
	w.metadataSink.RecordError(time.Now(), "collab", "LocalJobWorker.process", mapCollabErrorToMetadataCause(collabErr), err.Error(), nil)
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return u.Host
}
