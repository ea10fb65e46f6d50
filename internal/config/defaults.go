package config

// DefaultCategories returns the built-in file_types table.
func DefaultCategories() Categories {
	return Categories{
		{Name: "Images", Extensions: []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".svg", ".webp"}},
		{Name: "Documents", Extensions: []string{".pdf", ".doc", ".docx", ".txt", ".rtf", ".odt"}},
		{Name: "Spreadsheets", Extensions: []string{".xls", ".xlsx", ".csv", ".ods"}},
		{Name: "Videos", Extensions: []string{".mp4", ".avi", ".mkv", ".mov", ".wmv", ".flv", ".webm"}},
		{Name: "Audio", Extensions: []string{".mp3", ".wav", ".flac", ".aac", ".ogg", ".m4a"}},
		{Name: "Archives", Extensions: []string{".zip", ".rar", ".7z", ".tar", ".gz", ".bz2"}},
		{Name: "Code", Extensions: []string{".py", ".js", ".html", ".css", ".java", ".cpp", ".c", ".php"}},
		{Name: "Presentations", Extensions: []string{".ppt", ".pptx", ".odp"}},
	}
}

// Default returns the configuration used when no file is given. Paths are
// relative to the working directory until the config is finalized.
func Default() Config {
	return Config{
		SourceDir:        "./test_source",
		TargetDir:        "./organized_files",
		BackupDir:        "./backup",
		FileTypes:        DefaultCategories(),
		OrganizeByDate:   true,
		HandleDuplicates: true,
		CreateBackup:     false,
		GenerateReport:   true,
		MinFileSizeKB:    1,
		ReportDir:        "./reports",
		Engine: EngineConfig{
			Parallelism:       4,
			FileTimeout:       "10 minutes",
			MaxRenameAttempts: 10000,
			SeedMissingSource: true,
		},
		Scan: ScanConfig{
			SkipHidden:   true,
			HiddenPrefix: ".",
			Exclude: ExcludeConfig{
				Files:    []string{},
				Patterns: []string{},
				Globs:    []string{},
			},
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
			Rotation: RotationConfig{
				MaxSize:  "10MB",
				MaxFiles: 3,
			},
		},
	}
}
