package service

import (
	"context"
	"sync"
)

// fakeCompleter 按顺序返回预设回复；设置 gate 后阻塞到 gate 关闭
type fakeCompleter struct {
	mu        sync.Mutex
	responses []string
	err       error
	prompts   []string
	arrived   chan struct{}
	gate      chan struct{}
}

func newFakeCompleter(responses ...string) *fakeCompleter {
	return &fakeCompleter{responses: responses}
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	var resp string
	if len(f.responses) > 0 {
		resp = f.responses[0]
		if len(f.responses) > 1 {
			f.responses = f.responses[1:]
		}
	}
	err, arrived, gate := f.err, f.arrived, f.gate
	f.mu.Unlock()

	if arrived != nil {
		arrived <- struct{}{}
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return resp, err
}

func (f *fakeCompleter) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func (f *fakeCompleter) LastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

const quizReply = "```json\n" + `{"questions":[
 {"id":1,"question":"What is a goroutine?","options":["A thread","A lightweight thread","A process","A channel"],"correctAnswer":"A lightweight thread","explanation":"Goroutines are scheduled by the Go runtime."},
 {"id":2,"question":"Which keyword starts one?","options":["go","run","spawn","async"],"correctAnswer":"go","explanation":"The go statement starts a goroutine."}
]}` + "\n```"

const pathReply = `{
 "title":"Go Services",
 "description":"Build HTTP services in Go",
 "difficulty":"beginner",
 "estimatedDuration":20,
 "modules":[
  {"id":"module-1","title":"Basics","description":"Syntax","topics":["types"],"objectives":["write code"],"resources":[{"title":"Tour","type":"tutorial","url":"https://go.dev/tour"}],"duration":8},
  {"id":"module-2","title":"HTTP","description":"net/http","topics":["handlers"],"objectives":["serve"],"resources":[],"duration":12}
 ]
}`
