package calendarcache

import "errors"

var (
	// ErrCacheMiss возвращается, когда для клинера нет сохранённых данных календаря
	ErrCacheMiss = errors.New("calendarcache.repository: no cached calendar data")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("calendarcache.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("calendarcache.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("calendarcache.repository: failed to scan row")
)
