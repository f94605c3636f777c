package get_team_coverage

import (
	"context"

	getTeamCoverage "github.com/m04kA/SMC-TeamScheduling/internal/usecase/get_team_coverage"
)

type GetTeamCoverageUseCase interface {
	Execute(ctx context.Context, req *getTeamCoverage.Request) (*getTeamCoverage.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
