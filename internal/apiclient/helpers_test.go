package apiclient_test

import (
	reqdto "coworking-pos/internal/handler/dto/request"

	"github.com/google/uuid"
)

func reqOrder() reqdto.CreateOrderRequest {
	return reqdto.CreateOrderRequest{
		Items:         []reqdto.OrderItemRequest{{ProductID: uuid.New(), Quantity: 2}},
		PaymentMethod: "cash",
	}
}
