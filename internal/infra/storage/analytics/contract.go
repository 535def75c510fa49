package analytics

import "github.com/m04kA/SMC-BeautyMarketplace/pkg/dbmetrics"

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
