package i18n

type Translation struct {
	En string `json:"en"`
	Ar string `json:"ar"`
}

func (t Translation) In(lang Language) string {
	if lang.OrDefault() == Arabic {
		return t.Ar
	}
	return t.En
}

var translations = map[string]Translation{
	// Navigation
	"dashboard":  {En: "Dashboard", Ar: "لوحة التحكم"},
	"properties": {En: "Properties", Ar: "العقارات"},
	"bookings":   {En: "Bookings", Ar: "الحجوزات"},
	"cleaners":   {En: "Cleaners", Ar: "عمال النظافة"},
	"tasks":      {En: "Tasks", Ar: "المهام"},
	"analytics":  {En: "Analytics", Ar: "التحليلات"},
	"settings":   {En: "Settings", Ar: "الإعدادات"},

	// Dashboard
	"totalRevenue":     {En: "Total Revenue", Ar: "إجمالي الإيرادات"},
	"occupancyRate":    {En: "Occupancy Rate", Ar: "معدل الإشغال"},
	"averageDailyRate": {En: "Average Daily Rate", Ar: "متوسط السعر اليومي"},
	"totalBookings":    {En: "Total Bookings", Ar: "إجمالي الحجوزات"},
	"upcomingCheckIns": {En: "Upcoming Check-ins", Ar: "الوصول القادم"},
	"pendingTasks":     {En: "Pending Tasks", Ar: "المهام المعلقة"},
	"aiOptimizations":  {En: "AI Optimizations", Ar: "تحسينات الذكاء الاصطناعي"},
	"occupancy7Days":   {En: "Occupancy Rate - 7 Days", Ar: "معدل الإشغال - 7 أيام"},

	// Properties
	"addProperty":  {En: "Add Property", Ar: "إضافة عقار"},
	"propertyName": {En: "Property Name", Ar: "اسم العقار"},
	"address":      {En: "Address", Ar: "العنوان"},
	"city":         {En: "City", Ar: "المدينة"},
	"currentRank":  {En: "Current Rank", Ar: "الترتيب الحالي"},
	"targetRank":   {En: "Target Rank", Ar: "الترتيب المستهدف"},

	// Bookings
	"guestName":        {En: "Guest Name", Ar: "اسم النزيل"},
	"checkIn":          {En: "Check-in", Ar: "تسجيل الوصول"},
	"checkOut":         {En: "Check-out", Ar: "تسجيل المغادرة"},
	"bookingReference": {En: "Booking Reference", Ar: "مرجع الحجز"},
	"smartLockPin":     {En: "Smart Lock PIN", Ar: "رقم القفل الذكي"},

	// Cleaners
	"cleanerName": {En: "Cleaner Name", Ar: "اسم عامل النظافة"},
	"phone":       {En: "Phone", Ar: "الهاتف"},
	"hourlyRate":  {En: "Hourly Rate", Ar: "الأجر بالساعة"},

	// Tasks
	"taskTitle":   {En: "Task Title", Ar: "عنوان المهمة"},
	"description": {En: "Description", Ar: "الوصف"},
	"priority":    {En: "Priority", Ar: "الأولوية"},
	"status":      {En: "Status", Ar: "الحالة"},
	"assignedTo":  {En: "Assigned To", Ar: "مُكلف إلى"},

	// AI edits
	"aiSuggestions":  {En: "AI Suggestions", Ar: "اقتراحات الذكاء الاصطناعي"},
	"optimizedTitle": {En: "Optimized Title", Ar: "العنوان المحسن"},
	"suggestedPrice": {En: "Suggested Price", Ar: "السعر المقترح"},
	"approve":        {En: "Approve", Ar: "موافق"},
	"reject":         {En: "Reject", Ar: "رفض"},

	// Check-in
	"bookingLookup":   {En: "Booking Lookup", Ar: "البحث عن الحجز"},
	"contractSigning": {En: "Contract Signing", Ar: "توقيع العقد"},
	"pinAndPayment":   {En: "PIN & Payment", Ar: "رقم القفل والدفع"},

	// Common
	"save":    {En: "Save", Ar: "حفظ"},
	"cancel":  {En: "Cancel", Ar: "إلغاء"},
	"delete":  {En: "Delete", Ar: "حذف"},
	"edit":    {En: "Edit", Ar: "تعديل"},
	"view":    {En: "View", Ar: "عرض"},
	"loading": {En: "Loading...", Ar: "جاري التحميل..."},
	"error":   {En: "Error", Ar: "خطأ"},
	"success": {En: "Success", Ar: "نجح"},

	// Status
	"pending":    {En: "Pending", Ar: "معلق"},
	"approved":   {En: "Approved", Ar: "موافق عليه"},
	"rejected":   {En: "Rejected", Ar: "مرفوض"},
	"applied":    {En: "Applied", Ar: "مطبق"},
	"completed":  {En: "Completed", Ar: "مكتمل"},
	"inProgress": {En: "In Progress", Ar: "قيد التنفيذ"},
	"confirmed":  {En: "Confirmed", Ar: "مؤكد"},
	"checkedIn":  {En: "Checked In", Ar: "تم الوصول"},
	"checkedOut": {En: "Checked Out", Ar: "تمت المغادرة"},
	"cancelled":  {En: "Cancelled", Ar: "ملغي"},

	// Priority
	"low":    {En: "Low", Ar: "منخفض"},
	"medium": {En: "Medium", Ar: "متوسط"},
	"high":   {En: "High", Ar: "عالي"},
	"urgent": {En: "Urgent", Ar: "عاجل"},
}

// T returns the display string for key, or key itself when there is no entry.
func T(key string, lang Language) string {
	tr, ok := translations[key]
	if !ok {
		return key
	}
	if s := tr.In(lang); s != "" {
		return s
	}
	return key
}

// Table resolves every known key in lang.
func Table(lang Language) map[string]string {
	out := make(map[string]string, len(translations))
	for key := range translations {
		out[key] = T(key, lang)
	}
	return out
}

// StatusKey maps stored snake_case status/priority values to table keys.
func StatusKey(status string) string {
	switch status {
	case "in_progress":
		return "inProgress"
	case "checked_in":
		return "checkedIn"
	case "checked_out":
		return "checkedOut"
	default:
		return status
	}
}
