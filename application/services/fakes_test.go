package services

import (
	"context"
	"github.com/mengeshaster/transcriber-twilio/application/ports/outbound"
	"sort"
	"strings"
	"sync"
)

// memStore is an in-memory ArtifactStorePort with S3's lexical list order.
type memStore struct {
	mu      sync.Mutex
	objects map[string]map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string]map[string][]byte)}
}

func (m *memStore) Put(_ context.Context, bucket string, key string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.objects[bucket] == nil {
		m.objects[bucket] = make(map[string][]byte)
	}
	m.objects[bucket][key] = append([]byte(nil), body...)
	return nil
}

func (m *memStore) Get(_ context.Context, bucket string, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	body, ok := m.objects[bucket][key]
	if !ok {
		return nil, outbound.ErrObjectNotFound
	}
	return append([]byte(nil), body...), nil
}

func (m *memStore) List(_ context.Context, bucket string, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for key := range m.objects[bucket] {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

type fakeMediaFetcher struct {
	content []byte
	err     error
	urls    []string
}

func (f *fakeMediaFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.urls = append(f.urls, url)
	if f.err != nil {
		return nil, f.err
	}
	return f.content, nil
}

type fakeJobSubmitter struct {
	err       error
	mediaURIs []string
}

func (f *fakeJobSubmitter) Submit(_ context.Context, mediaURI string) outbound.SubmissionResult {
	f.mediaURIs = append(f.mediaURIs, mediaURI)
	return outbound.SubmissionResult{JobID: "job", Err: f.err}
}

type fakeResultReader struct {
	texts map[string]string
}

func (f *fakeResultReader) Read(_ context.Context, jobID string) (*string, error) {
	text, ok := f.texts[jobID]
	if !ok {
		return nil, nil
	}
	return &text, nil
}

type fakeCallControl struct{}

func (fakeCallControl) RecordPrompt(outbound.RecordPromptParams) (string, error) {
	return "<Response><Say/><Record/></Response>", nil
}

func (fakeCallControl) Hangup() (string, error) {
	return "<Response><Hangup/></Response>", nil
}

// syncDispatcher runs submitted tasks inline so tests observe side effects
// deterministically.
type syncDispatcher struct{}

func (syncDispatcher) Submit(task func()) error {
	task()
	return nil
}
