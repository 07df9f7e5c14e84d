package content

import (
	"net/http"
	"net/mail"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mechtronglobal/backend/server/handler/common"
	"github.com/mechtronglobal/backend/server/resp"
	"github.com/mechtronglobal/backend/server/state"
	store "github.com/mechtronglobal/backend/storage/content"
)

// Inquiries reuse the document category column to index their status, so
// admin dashboards can filter new vs. handled submissions cheaply.

func HandleListInquiries(st *state.ServerState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := listFilter(r)
		if status := r.URL.Query().Get("status"); status != "" {
			f.Category = status
		}

		docs, pagination, err := st.ContentStore.List(r.Context(), store.CollectionInquiries, f)
		if err != nil {
			common.LogAndWriteError(w, r, "list inquiries", err)
			return
		}

		inquiries, err := decodeDocs[store.Inquiry](docs)
		if err != nil {
			common.LogAndWriteError(w, r, "list inquiries", err)
			return
		}

		resp.WriteDataPage(w, inquiries, pagination)
	}
}

// HandleCreateInquiry receives a contact-form submission. It only stores the
// inquiry; notification delivery is not this service's concern.
func HandleCreateInquiry(st *state.ServerState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var inquiry store.Inquiry
		if err := decodeJSON(w, r, &inquiry); err != nil {
			resp.WriteInvalidRequest(w, err.Error())
			return
		}

		if !validateInquiry(w, &inquiry) {
			return
		}

		inquiry.ID = uuid.New().String()
		inquiry.Status = store.InquiryStatusNew
		now := time.Now().UTC()
		inquiry.CreatedAt = now
		inquiry.UpdatedAt = now

		doc, err := store.MarshalDoc(inquiry.ID, "", inquiry.Status, false, &inquiry)
		if err != nil {
			common.LogAndWriteError(w, r, "create inquiry", err)
			return
		}

		if err := st.ContentStore.Insert(r.Context(), store.CollectionInquiries, doc); err != nil {
			common.LogAndWriteError(w, r, "create inquiry", err)
			return
		}

		resp.WriteDataCreated(w, inquiry)
	}
}

func HandleUpdateInquiryStatus(st *state.ServerState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Status string `json:"status"`
		}
		if err := decodeJSON(w, r, &body); err != nil {
			resp.WriteInvalidRequest(w, err.Error())
			return
		}

		if !validInquiryStatus(body.Status) {
			resp.WriteInvalidRequest(w, "status must be one of new, read, archived")
			return
		}

		id := chi.URLParam(r, "id")
		doc, err := st.ContentStore.Get(r.Context(), store.CollectionInquiries, id)
		if err != nil {
			common.LogAndWriteError(w, r, "update inquiry", err)
			return
		}

		var inquiry store.Inquiry
		if err := store.UnmarshalDoc(doc, &inquiry); err != nil {
			common.LogAndWriteError(w, r, "update inquiry", err)
			return
		}

		inquiry.Status = body.Status
		inquiry.UpdatedAt = time.Now().UTC()

		updated, err := store.MarshalDoc(inquiry.ID, "", inquiry.Status, false, &inquiry)
		if err != nil {
			common.LogAndWriteError(w, r, "update inquiry", err)
			return
		}

		if err := st.ContentStore.Update(r.Context(), store.CollectionInquiries, updated); err != nil {
			common.LogAndWriteError(w, r, "update inquiry", err)
			return
		}

		resp.WriteData(w, inquiry)
	}
}

func HandleDeleteInquiry(st *state.ServerState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.ContentStore.Delete(r.Context(), store.CollectionInquiries, chi.URLParam(r, "id")); err != nil {
			common.LogAndWriteError(w, r, "delete inquiry", err)
			return
		}

		resp.WriteData(w, nil)
	}
}

func validateInquiry(w http.ResponseWriter, inquiry *store.Inquiry) bool {
	switch {
	case inquiry.Name == "":
		writeRequiredFieldError(w, "name")
	case inquiry.Email == "":
		writeRequiredFieldError(w, "email")
	case inquiry.Message == "":
		writeRequiredFieldError(w, "message")
	default:
		if _, err := mail.ParseAddress(inquiry.Email); err != nil {
			resp.WriteInvalidRequest(w, "email is not a valid address")
			return false
		}
		return true
	}

	return false
}

func validInquiryStatus(status string) bool {
	switch status {
	case store.InquiryStatusNew, store.InquiryStatusRead, store.InquiryStatusArchived:
		return true
	}

	return false
}
