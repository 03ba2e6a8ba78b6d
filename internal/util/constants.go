package util

const (
	DateFormat    = "2006-01-02"
	TimeFormat    = "2006-01-02 15:04:05"
	ICSDateFormat = "20060102"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	MimeCalendar = "text/calendar"
	MimeXLSX     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// TargetMinutes is the length of the program: twenty hours of practice.
const TargetMinutes = 20 * 60
