package tasks

import "sync"

type item struct {
	task ScoringTask
	prev *item
}

// buffer is an unbounded fifo for pending scoring tasks.
type buffer struct {
	lock sync.Mutex
	head *item
	tail *item
	size int
}

func newBuffer() *buffer {
	return &buffer{}
}

func (b *buffer) PushBack(task ScoringTask) {
	b.lock.Lock()
	defer b.lock.Unlock()

	it := &item{task: task}
	if b.head == nil {
		b.head = it
		b.tail = it
	} else {
		b.tail.prev = it
		b.tail = it
	}
	b.size++
}

func (b *buffer) Pop() (ScoringTask, bool) {
	b.lock.Lock()
	defer b.lock.Unlock()

	if b.head == nil {
		return ScoringTask{}, false
	}
	tmp := b.head
	if b.head.prev != nil {
		b.head = b.head.prev
	} else {
		// removing the last one
		b.head = nil
		b.tail = nil
	}
	b.size--
	return tmp.task, true
}

func (b *buffer) Size() int {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.size
}
