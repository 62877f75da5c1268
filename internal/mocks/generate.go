package mocks

//go:generate mockery --name QueryExecutor --srcpkg github.com/delta-line/line-metrics/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name CauseStore --srcpkg github.com/delta-line/line-metrics/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
