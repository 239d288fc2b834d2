package timewheel

import (
	"chaindict/datastruct/dict"
	"chaindict/lib/logger"
	"container/list"
	"time"
)

type location struct {
	slot        int
	taskElement *list.Element
}

type task struct {
	delay   time.Duration
	circles int
	key     string
	job     func()
}

// TimeWheel 是单 goroutine 驱动的时间轮
// 所有对 slots 和 posMap 的修改都发生在 run 所在的 goroutine 中
type TimeWheel struct {
	interval       time.Duration
	ticker         *time.Ticker
	slots          []*list.List
	posMap         *dict.ChainedHashMap
	currentPos     int
	nSlots         int
	insertTaskChan chan *task
	removeTaskChan chan string
	stopChan       chan struct{}
}

func NewTimeWheel(interval time.Duration, nSlots int) *TimeWheel {
	if interval <= 0 || nSlots <= 0 {
		return nil
	}
	w := &TimeWheel{
		interval:       interval,
		slots:          make([]*list.List, nSlots),
		posMap:         dict.NewChainedHashMap(),
		nSlots:         nSlots,
		insertTaskChan: make(chan *task),
		removeTaskChan: make(chan string),
		stopChan:       make(chan struct{}),
	}
	for i := 0; i < nSlots; i++ {
		w.slots[i] = list.New()
	}
	return w
}

func (w *TimeWheel) Start() {
	w.ticker = time.NewTicker(w.interval)
	go w.run()
}

func (w *TimeWheel) Stop() {
	close(w.stopChan)
}

// AddJob 在 delay 之后执行 job，相同 key 的旧任务会被替换
func (w *TimeWheel) AddJob(job func(), key string, delay time.Duration) {
	if delay < 0 {
		delay = 0
	}
	select {
	case w.insertTaskChan <- &task{delay: delay, key: key, job: job}:
	case <-w.stopChan:
	}
}

func (w *TimeWheel) RemoveJob(key string) {
	if key == "" {
		return
	}
	select {
	case w.removeTaskChan <- key:
	case <-w.stopChan:
	}
}

func (w *TimeWheel) run() {
	for {
		select {
		case <-w.ticker.C:
			w.tickHandler()
		case t := <-w.insertTaskChan:
			w.insertTask(t)
		case key := <-w.removeTaskChan:
			w.removeTask(key)
		case <-w.stopChan:
			w.ticker.Stop()
			return
		}
	}
}

func (w *TimeWheel) tickHandler() {
	l := w.slots[w.currentPos]
	w.currentPos++
	if w.currentPos == w.nSlots {
		w.currentPos = 0
	}
	w.traverseTaskList(l)
}

func (w *TimeWheel) insertTask(t *task) {
	if t.key != "" {
		w.removeTask(t.key)
	}
	pos, circles := w.getPosAndCircles(t.delay)
	t.circles = circles
	e := w.slots[pos].PushBack(t)
	if t.key != "" {
		w.posMap.Put(t.key, &location{
			slot:        pos,
			taskElement: e,
		})
	}
}

func (w *TimeWheel) traverseTaskList(l *list.List) {
	for e := l.Front(); e != nil; {
		t := e.Value.(*task)
		if t.circles > 0 {
			t.circles--
			e = e.Next()
			continue
		}
		go func(job func()) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error(err)
				}
			}()
			job()
		}(t.job)
		next := e.Next()
		l.Remove(e)
		if t.key != "" {
			w.posMap.Remove(t.key)
		}
		e = next
	}
}

// getPosAndCircles 向上取整到 interval，保证任务不会提前执行
func (w *TimeWheel) getPosAndCircles(d time.Duration) (pos, circles int) {
	steps := int((d + w.interval - 1) / w.interval)
	pos = (w.currentPos + steps) % w.nSlots
	circles = steps / w.nSlots
	return
}

func (w *TimeWheel) removeTask(key string) {
	loc, ok := w.posMap.Get(key).(*location)
	if !ok {
		return
	}
	w.slots[loc.slot].Remove(loc.taskElement)
	w.posMap.Remove(key)
}
