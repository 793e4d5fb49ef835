package chat

import (
	"context"
	"errors"
	"io"

	"github.com/Vovarama1992/divinaci-bridge/internal/ai"
)

var errUpstream = errors.New("upstream down")

type fakeReply struct {
	text string
	err  error
}

// fakeAI replays scripted results and records every call.
type fakeAI struct {
	streamOpenErr error
	chunks        []string
	// chunkErr is returned by Recv after all chunks were sent.
	chunkErr error

	replies []fakeReply

	imageURL string
	imageErr error

	calls       []string
	histories   [][]ai.Message
	imagePrompt string
}

func (f *fakeAI) GetReply(_ context.Context, history []ai.Message) (string, error) {
	f.calls = append(f.calls, "reply")
	f.histories = append(f.histories, history)
	if len(f.replies) == 0 {
		return "", errUpstream
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	return r.text, r.err
}

func (f *fakeAI) StreamReply(_ context.Context, history []ai.Message) (ai.Stream, error) {
	f.calls = append(f.calls, "stream")
	f.histories = append(f.histories, history)
	if f.streamOpenErr != nil {
		return nil, f.streamOpenErr
	}
	return &fakeStream{chunks: append([]string(nil), f.chunks...), err: f.chunkErr}, nil
}

func (f *fakeAI) GenerateImage(_ context.Context, prompt string) (string, error) {
	f.calls = append(f.calls, "image")
	f.imagePrompt = prompt
	return f.imageURL, f.imageErr
}

type fakeStream struct {
	chunks []string
	err    error
	closed bool
}

func (s *fakeStream) Recv() (string, error) {
	if len(s.chunks) > 0 {
		c := s.chunks[0]
		s.chunks = s.chunks[1:]
		return c, nil
	}
	if s.err != nil {
		return "", s.err
	}
	return "", io.EOF
}

func (s *fakeStream) Close() error {
	s.closed = true
	return nil
}

// recordingJournal keeps every exchange in memory.
type recordingJournal struct {
	exchanges []Exchange
}

func (j *recordingJournal) Record(_ context.Context, ex Exchange) error {
	j.exchanges = append(j.exchanges, ex)
	return nil
}
