package main

import (
	"github.com/xiebiao/northwind/internal/domain/report"
	"github.com/xiebiao/northwind/internal/infrastructure/config"
	"github.com/xiebiao/northwind/internal/infrastructure/persistence/mysql"
)

// provideReportRepository 报表仓储只需要config中的报表部分
func provideReportRepository(conns mysql.ConnProvider, cfg *config.Config) report.Repository {
	return mysql.NewReportRepository(conns, cfg.Report)
}
