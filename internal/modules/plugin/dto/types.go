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

type ExportInput struct {
	PluginName   string
	DocumentJSON []byte
	Options      map[string]string
}

type ExportOutput struct {
	PluginName    string
	FileExtension string
	ContentType   string
	Payload       []byte
}
