package directory

import "time"

// Clock は現在時刻と遅延実行を提供します。
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer は AfterFunc で予約した処理のハンドルです。
type Timer interface {
	Stop() bool
}

type systemClock struct{}

// SystemClock は time パッケージに基づく Clock を返します。
func SystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
