package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/artifact --output domain/artifact --outpkg artifactmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name RecordSource --dir ../domain/gameweek --output domain/gameweek --outpkg gameweekmock --filename record_source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name RecordSink --dir ../domain/gameweek --output domain/gameweek --outpkg gameweekmock --filename record_sink_mock.go
