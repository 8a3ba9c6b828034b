//go:generate mockgen -source=../cart_gateway.go     -destination=./mock_cart_gateway.go     -package=mocks
//go:generate mockgen -source=../cart_service.go     -destination=./mock_cart_service.go     -package=mocks
//go:generate mockgen -source=../flush_journal.go    -destination=./mock_flush_journal.go    -package=mocks
//go:generate mockgen -source=../logger.go           -destination=./mock_logger.go           -package=mocks
//go:generate mockgen -source=../message_consumer.go -destination=./mock_message_consumer.go -package=mocks
//go:generate mockgen -source=../snapshot_mirror.go  -destination=./mock_snapshot_mirror.go  -package=mocks

package mocks
