package directory

// ModalKind はダイアログの種類です。
type ModalKind int

const (
	ModalNone ModalKind = iota
	ModalViewing
	ModalConfirmingDelete
)

func (k ModalKind) String() string {
	switch k {
	case ModalViewing:
		return "viewing"
	case ModalConfirmingDelete:
		return "confirmingDelete"
	default:
		return "none"
	}
}

// ModalState は排他的なダイアログ状態です。Kind が ModalNone のとき Record はゼロ値です。
type ModalState struct {
	Kind   ModalKind
	Record Record
}

// Active はいずれかのダイアログが開いているかを返します。
func (s ModalState) Active() bool {
	return s.Kind != ModalNone
}

// ModalCoordinator は詳細表示と削除確認のどちらか一方だけを開いた状態に保ちます。
// 同期は所有者（Orchestrator）が行います。
type ModalCoordinator struct {
	state ModalState
}

// OpenView は詳細表示ダイアログへ直接遷移します。
func (m *ModalCoordinator) OpenView(r Record) {
	m.state = ModalState{Kind: ModalViewing, Record: r}
}

// OpenDeleteConfirm は削除確認ダイアログへ直接遷移します。
func (m *ModalCoordinator) OpenDeleteConfirm(r Record) {
	m.state = ModalState{Kind: ModalConfirmingDelete, Record: r}
}

// Close はどの状態からでも ModalNone へ戻します。
func (m *ModalCoordinator) Close() {
	m.state = ModalState{}
}

// State は現在の状態を返します。
func (m *ModalCoordinator) State() ModalState {
	return m.state
}
