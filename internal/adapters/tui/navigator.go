package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenDirectory screen = iota
	screenEditor
)

type navigateMsg struct {
	screen screen
	// id が空の場合は新規作成フォームです。
	id string
}

// changedMsg は Orchestrator の状態変化で再描画を要求します。
type changedMsg struct{}

// Navigator は directory.Navigator の bubbletea 実装です。
// 遷移はプログラムへのメッセージとして非同期に届けられます。
type Navigator struct {
	mu      sync.Mutex
	program *tea.Program
	pending chan tea.Msg
}

func NewNavigator() *Navigator {
	return &Navigator{pending: make(chan tea.Msg, 64)}
}

// Attach は以降のメッセージを p に送ります。
// 未接続の間に溜まった遷移は接続時に順番どおり p へ渡されます。
func (n *Navigator) Attach(p *tea.Program) {
	n.mu.Lock()
	n.program = p
	n.mu.Unlock()

	if p == nil {
		return
	}

	var queued []tea.Msg
drain:
	for {
		select {
		case msg := <-n.pending:
			queued = append(queued, msg)
		default:
			break drain
		}
	}
	if len(queued) > 0 {
		go func() {
			for _, msg := range queued {
				p.Send(msg)
			}
		}()
	}
}

func (n *Navigator) NavigateRoot() {
	n.dispatch(navigateMsg{screen: screenDirectory})
}

func (n *Navigator) NavigateEditor(id string) {
	n.dispatch(navigateMsg{screen: screenEditor, id: id})
}

func (n *Navigator) NavigateCreate() {
	n.dispatch(navigateMsg{screen: screenEditor})
}

// Changed は Orchestrator の OnChange に渡します。
func (n *Navigator) Changed() {
	n.dispatch(changedMsg{})
}

// dispatch は Update の内側からも呼ばれるため、同期的な Send は使いません。
func (n *Navigator) dispatch(msg tea.Msg) {
	n.mu.Lock()
	p := n.program
	n.mu.Unlock()

	if p != nil {
		go p.Send(msg)
		return
	}

	// 未接続時はブロックしない。満杯なら再描画は捨て、遷移は最古の要素を追い出して積む。
	for {
		select {
		case n.pending <- msg:
			return
		default:
		}
		if _, redraw := msg.(changedMsg); redraw {
			return
		}
		select {
		case <-n.pending:
		default:
		}
	}
}
