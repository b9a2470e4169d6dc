package dto

type PluginInfo struct {
	Name         string
	Version      string
	Enabled      bool
	Binary       string
	Capabilities []string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

type ExpandInput struct {
	Viewer  string
	QuestID string
	Pages   []string
}

type ExpandOutput struct {
	Pages []string
}
