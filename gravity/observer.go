package gravity

import "k8s.io/klog/v2"

// An Observer receives diagnostics from a calibration as it runs; the arguments
// follow the klog structured logging convention. A nil Observer is fine.
type Observer func(event string, keysAndValues ...interface{})

func (o Observer)emit(event string, keysAndValues ...interface{}) {
	if o != nil { o(event, keysAndValues...) }
}

// KlogObserver logs each event at the given verbosity.
func KlogObserver(level klog.Level) Observer {
	return func(event string, keysAndValues ...interface{}) {
		klog.V(level).InfoS(event, keysAndValues...)
	}
}
