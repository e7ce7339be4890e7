package billing

const (
	EventCheckoutCompleted   = "checkout.session.completed"
	EventSubscriptionDeleted = "customer.subscription.deleted"
)

type Mode string

const (
	ModePayment      Mode = "payment"
	ModeSubscription Mode = "subscription"
)

const PlanPro = "pro"

const (
	metaUserID   = "user_id"
	metaCourseID = "course_id"
)
