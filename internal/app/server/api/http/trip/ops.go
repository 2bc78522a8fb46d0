package trip

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

var bearer = []map[string][]string{{"bearer": {}}}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "trips-list",
		Method:      http.MethodGet,
		Path:        "/api/trips",
		Summary:     "Список поездок пользователя, новые первыми",
		Tags:        []string{"trips"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "trips-create",
		Method:      http.MethodPost,
		Path:        "/api/trips",
		Summary:     "Создать поездку",
		Tags:        []string{"trips"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "trips-update",
		Method:      http.MethodPut,
		Path:        "/api/trips/{id}",
		Summary:     "Частично обновить поездку",
		Description: "Меняет только переданные поля. Чужая или несуществующая поездка - 404.",
		Tags:        []string{"trips"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "trips-delete",
		Method:      http.MethodDelete,
		Path:        "/api/trips/{id}",
		Summary:     "Удалить поездку",
		Tags:        []string{"trips"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}
