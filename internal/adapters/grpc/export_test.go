package grpc

// ShutdownWatcherExited is closed once the shutdown watcher goroutine returns
func (s *RoutingServer) ShutdownWatcherExited() <-chan struct{} {
	return s.watcherExited
}
