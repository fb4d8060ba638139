package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	RemoveDirError

	// Logging errors
	CreateLogFileError

	// Sources configuration errors
	SourcesConfigError
	SourcesUnknownIDError

	// Input errors
	InputOpenError
	InputEmptyError
	InputFormatError

	// Cache errors
	CacheReadError
	CacheWriteError

	// Journal errors
	JournalOpenError
	JournalMigrateError
	JournalWriteError
	JournalQueryError

	// Report errors
	ReportSheetError
	ReportSaveError

	// Pipeline errors
	PipelineNoSourcesError
	PipelineNoNamesError
)
