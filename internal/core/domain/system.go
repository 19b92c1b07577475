package domain

// ProcessInfo describes running processes sharing one executable.
type ProcessInfo struct {
	Name string `json:"name"`
	Exe  string `json:"exe"`
	Nice int32  `json:"nice"`
	// NumThreads is taken from the first process seen for the executable.
	NumThreads int32 `json:"num_threads"`
	// MemoryPercent is summed over every process of the executable.
	MemoryPercent float64 `json:"memory_percent"`
}

// ServiceInfo describes an OS service.
type ServiceInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	BinPath     string `json:"binpath"`
	Status      string `json:"status"`
	StartType   string `json:"start_type"`
}
