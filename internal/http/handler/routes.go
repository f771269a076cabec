package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"coparent/internal/service"
)

// Services bundles the use cases the routes dispatch to.
type Services struct {
	Users             service.UserService
	Family            service.FamilyService
	Children          service.ChildService
	Custody           service.CustodyService
	Schedules         service.ScheduleService
	Reminders         service.ReminderService
	Medications       service.MedicationService
	Journal           service.JournalService
	Notifications     service.NotificationService
	Babysitters       service.BabysitterService
	EmergencyContacts service.EmergencyContactService
	MedicalProviders  service.MedicalProviderService
	GroupChats        service.GroupChatService
}

// RegisterRoutes attaches the probes and the authenticated /api/v1 routes.
// auth must populate middleware.UserLocalKey.
func RegisterRoutes(app *fiber.App, db *sql.DB, auth fiber.Handler, s Services) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api/v1", auth)

	api.Get("/users/me", GetMe(s.Users))
	api.Put("/users/me", UpdateMe(s.Users))
	api.Put("/users/me/device", RegisterDevice(s.Users))
	api.Post("/users/me/photo", UploadPhoto(s.Users))

	api.Get("/family/members", ListFamilyMembers(s.Family))
	api.Get("/family/custodians", ListCustodians(s.Family))

	api.Get("/children", ListChildren(s.Children))
	api.Post("/children", CreateChild(s.Children))
	api.Put("/children/:id", UpdateChild(s.Children))
	api.Delete("/children/:id", DeleteChild(s.Children))

	api.Get("/custody/handoff-only/:year/:month", GetHandoffs(s.Custody))
	api.Get("/custody/:year/:month", GetCustodyMonth(s.Custody))
	api.Post("/custody/bulk", BulkCreateCustody(s.Custody))
	api.Post("/custody", CreateCustody(s.Custody))
	api.Put("/custody/:date", UpdateCustody(s.Custody))

	api.Get("/schedule-templates", ListScheduleTemplates(s.Schedules))
	api.Post("/schedule-templates", CreateScheduleTemplate(s.Schedules))
	api.Post("/schedule-templates/apply", ApplyScheduleTemplate(s.Schedules))
	api.Post("/schedule-templates/preview", PreviewScheduleTemplate(s.Schedules))
	api.Get("/schedule-templates/:id", GetScheduleTemplate(s.Schedules))
	api.Put("/schedule-templates/:id", UpdateScheduleTemplate(s.Schedules))
	api.Delete("/schedule-templates/:id", DeleteScheduleTemplate(s.Schedules))

	api.Get("/reminders", ListReminders(s.Reminders))
	api.Post("/reminders", CreateReminder(s.Reminders))
	api.Get("/reminders/:id", GetReminder(s.Reminders))
	api.Put("/reminders/:id", UpdateReminder(s.Reminders))
	api.Delete("/reminders/:id", DeleteReminder(s.Reminders))

	api.Get("/medications", ListMedications(s.Medications))
	api.Post("/medications", CreateMedication(s.Medications))
	api.Get("/medications/reminders", ListMedicationReminders(s.Medications))
	api.Get("/medications/:id", GetMedication(s.Medications))
	api.Put("/medications/:id", UpdateMedication(s.Medications))
	api.Delete("/medications/:id", DeleteMedication(s.Medications))

	api.Get("/journal", ListJournalEntries(s.Journal))
	api.Post("/journal", CreateJournalEntry(s.Journal))
	api.Get("/journal/:id", GetJournalEntry(s.Journal))
	api.Put("/journal/:id", UpdateJournalEntry(s.Journal))
	api.Delete("/journal/:id", DeleteJournalEntry(s.Journal))

	api.Get("/notifications/emails", ListNotificationEmails(s.Notifications))
	api.Post("/notifications/emails", AddNotificationEmail(s.Notifications))
	api.Put("/notifications/emails/:id", UpdateNotificationEmail(s.Notifications))
	api.Delete("/notifications/emails/:id", DeleteNotificationEmail(s.Notifications))

	api.Get("/babysitters", ListBabysitters(s.Babysitters))
	api.Post("/babysitters", CreateBabysitter(s.Babysitters))
	api.Put("/babysitters/:id", UpdateBabysitter(s.Babysitters))
	api.Delete("/babysitters/:id", DeleteBabysitter(s.Babysitters))

	api.Get("/emergency-contacts", ListEmergencyContacts(s.EmergencyContacts))
	api.Post("/emergency-contacts", CreateEmergencyContact(s.EmergencyContacts))
	api.Put("/emergency-contacts/:id", UpdateEmergencyContact(s.EmergencyContacts))
	api.Delete("/emergency-contacts/:id", DeleteEmergencyContact(s.EmergencyContacts))

	api.Get("/medical-providers", ListMedicalProviders(s.MedicalProviders))
	api.Post("/medical-providers", CreateMedicalProvider(s.MedicalProviders))
	api.Get("/medical-providers/search", SearchMedicalProviders(s.MedicalProviders))
	api.Get("/medical-providers/:id", GetMedicalProvider(s.MedicalProviders))
	api.Put("/medical-providers/:id", UpdateMedicalProvider(s.MedicalProviders))
	api.Delete("/medical-providers/:id", DeleteMedicalProvider(s.MedicalProviders))

	api.Post("/group-chat", CreateGroupChat(s.GroupChats))
}
