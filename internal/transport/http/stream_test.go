package httpapi_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/cartsync/internal/domain"
	"github.com/Gunvolt24/cartsync/internal/ports/mocks"
)

func TestStream_SendsSnapshotsUntilClosed(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockCartService(ctrl)

	updates := make(chan *domain.CartSnapshot, 2)
	updates <- nil
	updates <- sampleCart()
	close(updates)

	unsubscribed := false
	svc.EXPECT().Subscribe().Return((<-chan *domain.CartSnapshot)(updates), func() { unsubscribed = true })

	w := serve(newRouter(svc), http.MethodGet, "/cart/stream", "")

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/event-stream"))
	require.True(t, unsubscribed)

	body := w.Body.String()
	require.Equal(t, 2, strings.Count(body, "event:cart"), body)
	require.Contains(t, body, "data:null")
	require.Contains(t, body, `"cartItems"`)
	require.Contains(t, body, "event:close")
}
