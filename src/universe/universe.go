package universe

type Universe interface {
	Status() Status
	Options() Options
	StateCh() chan Status
	RegisterViewer(v Viewer)
	Run()
	Pause()
	Step()
	Generate()
	LoadCode(code string) error
	Code() string
	SetBrightness(brightness int) error
	ToggleMute() bool
	Shutdown()
	Close()
}
