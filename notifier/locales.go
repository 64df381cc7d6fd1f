package notifier

import "booking_service/domain"

// localeStrings is the single localization source for both dispatchers.
// The chat message uses the Czech table (the back office is Czech), the
// confirmation email uses the submitter's locale.
type localeStrings struct {
	Subject        string
	Greeting       string
	Intro          string
	ReservationID  string
	ServiceLabel   string
	PackageLabel   string
	DateLabel      string
	TimeLabel      string
	PickupLabel    string
	DeliveryLabel  string
	AddressLabel   string
	ApartmentLabel string
	MessageLabel   string
	Footer         string
	Services       map[domain.ServiceType]string
	Packages       map[string]string
	TimeWindows    map[domain.TimeWindow]string
}

var locales = map[domain.Locale]localeStrings{
	domain.LocaleCS: {
		Subject:        "Potvrzení rezervace",
		Greeting:       "Dobrý den",
		Intro:          "děkujeme za Vaši rezervaci. Níže najdete její shrnutí.",
		ReservationID:  "Číslo rezervace",
		ServiceLabel:   "Služba",
		PackageLabel:   "Balíček",
		DateLabel:      "Datum",
		TimeLabel:      "Čas",
		PickupLabel:    "Adresa vyzvednutí",
		DeliveryLabel:  "Adresa doručení",
		AddressLabel:   "Adresa",
		ApartmentLabel: "Velikost bytu",
		MessageLabel:   "Zpráva",
		Footer:         "Brzy se Vám ozveme s potvrzením termínu.",
		Services: map[domain.ServiceType]string{
			domain.ServiceMoving:            "Stěhování",
			domain.ServiceCleaning:          "Úklid",
			domain.ServicePacking:           "Balení",
			domain.ServiceFurnitureCleaning: "Čištění nábytku",
			domain.ServiceHandyman:          "Hodinový manžel",
			domain.ServicePackages:          "Balíčky služeb",
			domain.ServiceOther:             "Jiné",
		},
		Packages: map[string]string{
			"maintenance":    "Udržovací úklid",
			"general":        "Generální úklid",
			"postRenovation": "Úklid po rekonstrukci",
		},
		TimeWindows: map[domain.TimeWindow]string{
			domain.TimeMorning:     "Ráno",
			domain.TimeAfternoon:   "Odpoledne",
			domain.TimeEvening:     "Večer",
			domain.TimeNight:       "Noc",
			domain.TimeByAgreement: "Dle dohody",
		},
	},
	domain.LocaleEN: {
		Subject:        "Reservation confirmation",
		Greeting:       "Hello",
		Intro:          "thank you for your reservation. You can find its summary below.",
		ReservationID:  "Reservation number",
		ServiceLabel:   "Service",
		PackageLabel:   "Package",
		DateLabel:      "Date",
		TimeLabel:      "Time",
		PickupLabel:    "Pickup address",
		DeliveryLabel:  "Delivery address",
		AddressLabel:   "Address",
		ApartmentLabel: "Apartment size",
		MessageLabel:   "Message",
		Footer:         "We will get back to you shortly to confirm the date.",
		Services: map[domain.ServiceType]string{
			domain.ServiceMoving:            "Moving",
			domain.ServiceCleaning:          "Cleaning",
			domain.ServicePacking:           "Packing",
			domain.ServiceFurnitureCleaning: "Furniture cleaning",
			domain.ServiceHandyman:          "Handyman",
			domain.ServicePackages:          "Service packages",
			domain.ServiceOther:             "Other",
		},
		Packages: map[string]string{
			"maintenance":    "Maintenance cleaning",
			"general":        "General cleaning",
			"postRenovation": "Post-renovation cleaning",
		},
		TimeWindows: map[domain.TimeWindow]string{
			domain.TimeMorning:     "Morning",
			domain.TimeAfternoon:   "Afternoon",
			domain.TimeEvening:     "Evening",
			domain.TimeNight:       "Night",
			domain.TimeByAgreement: "By agreement",
		},
	},
	domain.LocaleUA: {
		Subject:        "Підтвердження бронювання",
		Greeting:       "Доброго дня",
		Intro:          "дякуємо за Ваше бронювання. Нижче знайдете його підсумок.",
		ReservationID:  "Номер бронювання",
		ServiceLabel:   "Послуга",
		PackageLabel:   "Пакет",
		DateLabel:      "Дата",
		TimeLabel:      "Час",
		PickupLabel:    "Адреса завантаження",
		DeliveryLabel:  "Адреса доставки",
		AddressLabel:   "Адреса",
		ApartmentLabel: "Розмір квартири",
		MessageLabel:   "Повідомлення",
		Footer:         "Незабаром ми зв'яжемося з Вами для підтвердження терміну.",
		Services: map[domain.ServiceType]string{
			domain.ServiceMoving:            "Переїзд",
			domain.ServiceCleaning:          "Прибирання",
			domain.ServicePacking:           "Пакування",
			domain.ServiceFurnitureCleaning: "Чищення меблів",
			domain.ServiceHandyman:          "Майстер на годину",
			domain.ServicePackages:          "Пакети послуг",
			domain.ServiceOther:             "Інше",
		},
		Packages: map[string]string{
			"maintenance":    "Підтримуюче прибирання",
			"general":        "Генеральне прибирання",
			"postRenovation": "Прибирання після ремонту",
		},
		TimeWindows: map[domain.TimeWindow]string{
			domain.TimeMorning:     "Ранок",
			domain.TimeAfternoon:   "Після обіду",
			domain.TimeEvening:     "Вечір",
			domain.TimeNight:       "Ніч",
			domain.TimeByAgreement: "За домовленістю",
		},
	},
}

// stringsFor falls back to Czech for unknown locales.
func stringsFor(locale domain.Locale) localeStrings {
	strings, ok := locales[locale]
	if !ok {
		return locales[domain.LocaleCS]
	}
	return strings
}

func (l localeStrings) serviceName(service domain.ServiceType) string {
	name, ok := l.Services[service]
	if !ok {
		return string(service)
	}
	return name
}

func (l localeStrings) packageName(pkg string) string {
	name, ok := l.Packages[pkg]
	if !ok {
		return pkg
	}
	return name
}

func (l localeStrings) timeWindowName(window domain.TimeWindow) string {
	name, ok := l.TimeWindows[window]
	if !ok {
		return string(window)
	}
	return name
}
