package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Backend --dir ../domain/playerstats --output domain/playerstats --outpkg playerstatsmock --filename backend_mock.go
