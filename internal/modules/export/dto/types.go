package dto

type ExportInput struct {
	Format     string
	PluginName string
	Options    map[string]string
}

type ExportOutput struct {
	FileName    string
	ContentType string
	Payload     []byte
	Records     int
}
